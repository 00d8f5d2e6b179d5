package game

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/decker502/zombieshot/pkg/persistence"
	"gopkg.in/yaml.v3"
)

// highScoreKey 排行榜在存储中的键
const highScoreKey = "highscores"

// DefaultHighScoreLimit 排行榜保留条数
const DefaultHighScoreLimit = 10

// HighScoreEntry 排行榜单条记录
type HighScoreEntry struct {
	Score       int       `yaml:"score"`
	Kills       int       `yaml:"kills"`
	Wave        int       `yaml:"wave"`
	Difficulty  string    `yaml:"difficulty"`
	CharacterID int       `yaml:"characterID"`
	SessionID   string    `yaml:"sessionID"`
	At          time.Time `yaml:"at"`
}

// HighScoreBoard 持久化的最高分排行榜
// 按分数降序，同分时较早的记录在前
type HighScoreBoard struct {
	store   persistence.Store
	limit   int
	entries []HighScoreEntry
}

// NewHighScoreBoard 创建排行榜并从存储加载已有记录
//
// 参数：
//   - store: 存储后端，可为 nil（仅内存）
//   - limit: 保留条数，<= 0 时使用 DefaultHighScoreLimit
func NewHighScoreBoard(store persistence.Store, limit int) *HighScoreBoard {
	if limit <= 0 {
		limit = DefaultHighScoreLimit
	}
	b := &HighScoreBoard{store: store, limit: limit}
	if err := b.load(); err != nil {
		log.Printf("[HighScoreBoard] Warning: %v (starting empty)", err)
	}
	return b
}

func (b *HighScoreBoard) load() error {
	if b.store == nil {
		return nil
	}
	data, err := b.store.Get(highScoreKey)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read high scores: %w", err)
	}
	var entries []HighScoreEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal high scores: %w", err)
	}
	b.entries = entries
	b.normalize()
	return nil
}

// Submit 提交一条成绩
//
// 返回：
//   - int: 成绩在排行榜中的名次（从 1 开始），未上榜返回 0
//   - error: 持久化失败时返回错误（内存中的排行榜已更新）
func (b *HighScoreBoard) Submit(entry HighScoreEntry) (int, error) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	b.entries = append(b.entries, entry)
	b.normalize()

	rank := 0
	for i, e := range b.entries {
		if e == entry {
			rank = i + 1
			break
		}
	}
	if rank == 0 {
		return 0, nil
	}

	if b.store == nil {
		return rank, nil
	}
	data, err := yaml.Marshal(b.entries)
	if err != nil {
		return rank, fmt.Errorf("failed to marshal high scores: %w", err)
	}
	if err := b.store.Put(highScoreKey, data); err != nil {
		return rank, fmt.Errorf("failed to save high scores: %w", err)
	}
	log.Printf("[HighScoreBoard] New high score #%d: %d (wave %d)", rank, entry.Score, entry.Wave)
	return rank, nil
}

// Top 返回排行榜副本
func (b *HighScoreBoard) Top() []HighScoreEntry {
	out := make([]HighScoreEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Best 返回最高分，没有记录时为 0
func (b *HighScoreBoard) Best() int {
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

// normalize 排序并截断到 limit
func (b *HighScoreBoard) normalize() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		if b.entries[i].Score != b.entries[j].Score {
			return b.entries[i].Score > b.entries[j].Score
		}
		return b.entries[i].At.Before(b.entries[j].At)
	})
	if len(b.entries) > b.limit {
		b.entries = b.entries[:b.limit]
	}
}
