package game

import (
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/google/uuid"
)

// GameState 存储一局游戏的全局状态
// 由 Simulation 持有并以引用传递给各系统，不是全局单例
type GameState struct {
	SessionID   string // 每局唯一标识，随存档保存
	Difficulty  types.Difficulty
	CharacterID int

	// 波次
	CurrentWave           int
	ZombiesSpawned        int // 累计生成数
	ZombiesKilled         int // 累计击杀数
	ZombiesKilledLastWave int // 上一波结束时的累计击杀数
	SpawnAccumulatorMs    int64

	IsPaused   bool
	IsGameOver bool
}

// NewGameState 创建新的一局
func NewGameState(difficulty types.Difficulty, characterID int) *GameState {
	if characterID < 1 {
		characterID = 1
	}
	return &GameState{
		SessionID:   uuid.New().String(),
		Difficulty:  difficulty,
		CharacterID: characterID,
		CurrentWave: 1,
	}
}

// ResetProgress 重置波次与计数（重新开局），生成新的会话ID
func (gs *GameState) ResetProgress() {
	gs.SessionID = uuid.New().String()
	gs.CurrentWave = 1
	gs.ZombiesSpawned = 0
	gs.ZombiesKilled = 0
	gs.ZombiesKilledLastWave = 0
	gs.SpawnAccumulatorMs = 0
	gs.IsPaused = false
	gs.IsGameOver = false
}

// MaxZombiesForWave 计算当前波次的僵尸上限（累计值）
//
// 公式：上一波结束时累计击杀 + 基础数量 + 基础数量 × 增长百分比 × (波次 - 1) / 100
func (gs *GameState) MaxZombiesForWave(basePerWave, increasePercent int) int {
	return gs.ZombiesKilledLastWave + basePerWave + basePerWave*increasePercent*(gs.CurrentWave-1)/100
}

// AdvanceWaveIfNeeded 场上没有存活僵尸且本波已生成满额时进入下一波
// 中途降低难度会使上限低于已生成数，此时同样视为满额
// 返回是否发生了波次推进
func (gs *GameState) AdvanceWaveIfNeeded(liveZombies, basePerWave, increasePercent int) bool {
	if liveZombies != 0 || gs.ZombiesSpawned < gs.MaxZombiesForWave(basePerWave, increasePercent) {
		return false
	}
	gs.ZombiesKilledLastWave = gs.ZombiesKilled
	gs.CurrentWave++
	return true
}
