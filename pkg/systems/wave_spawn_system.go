package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/types"
)

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 按难度决定的间隔生成僵尸，本波累计生成数达到上限后停止
//   - 在屏幕范围内随机选择远离玩家且不在障碍物上的位置
//   - 按波次逐步开放僵尸种类，速度乘以难度系数
//   - 场上清空且生成满额时推进波次
//
// 生成计时累积在 GameState.SpawnAccumulatorMs 中，暂停时不推进，并随存档保存。
type WaveSpawnSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	gameState     *game.GameState
	clock         *game.SimClock
	grid          *TileGridSystem
	rng           *rand.Rand
}

// NewWaveSpawnSystem 创建波次生成系统
//
// 参数：
//
//	em - 实体管理器
//	cfg - 游戏配置
//	gs - 游戏状态（波次与计数）
//	clock - 模拟时钟（爬行僵尸跳跃冷却起点）
//	grid - 瓦片地图（生成点合法性）
//	rng - 随机数源
func NewWaveSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, gs *game.GameState, clock *game.SimClock, grid *TileGridSystem, rng *rand.Rand) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		entityManager: em,
		config:        cfg,
		gameState:     gs,
		clock:         clock,
		grid:          grid,
		rng:           rng,
	}
}

func (s *WaveSpawnSystem) difficulty() config.DifficultyStats {
	return s.config.Difficulty(s.gameState.Difficulty)
}

// MaxZombiesForWave 当前波次的累计生成上限
func (s *WaveSpawnSystem) MaxZombiesForWave() int {
	d := s.difficulty()
	return s.gameState.MaxZombiesForWave(d.ZombiesPerWave, d.IncreasePercent)
}

// Update 推进生成计时，每到一个间隔尝试生成一个僵尸
//
// 参数：
//
//	dtMs - 时间增量（毫秒）
//
// 返回：
//
//	本次生成的僵尸数量
func (s *WaveSpawnSystem) Update(dtMs int64) int {
	interval := s.difficulty().SpawnIntervalMs
	if interval <= 0 || dtMs <= 0 {
		return 0
	}
	s.gameState.SpawnAccumulatorMs += dtMs

	spawned := 0
	for s.gameState.SpawnAccumulatorMs >= interval {
		s.gameState.SpawnAccumulatorMs -= interval
		if _, ok := s.SpawnZombie(); ok {
			spawned++
		}
	}
	return spawned
}

// SpawnZombie 生成一个僵尸，本波已生成满额时跳过
func (s *WaveSpawnSystem) SpawnZombie() (ecs.EntityID, bool) {
	if s.gameState.ZombiesSpawned >= s.MaxZombiesForWave() {
		return 0, false
	}

	kind := types.ZombieKind(s.rng.Intn(ZombieVariety(s.gameState.CurrentWave)))
	stats, ok := s.config.Zombie(kind)
	if !ok {
		log.Printf("[WaveSpawnSystem] Warning: no config for zombie %s", kind)
		return 0, false
	}

	x, y := s.pickSpawnPosition(stats.Width, stats.Height)
	id, err := entities.NewZombie(s.entityManager, s.config, kind, x, y, s.difficulty().SpeedMultiplier, s.clock.Now())
	if err != nil {
		log.Printf("[WaveSpawnSystem] Warning: failed to spawn %s: %v", kind, err)
		return 0, false
	}
	s.gameState.ZombiesSpawned++
	return id, true
}

// pickSpawnPosition 在屏幕范围内随机取点，要求距玩家足够远且不在障碍物上
// 重试次数有上限，全部失败时使用最后一个候选点
func (s *WaveSpawnSystem) pickSpawnPosition(width, height int) (float64, float64) {
	ox, oy := s.grid.Offset()
	sw, sh := s.config.World.ScreenWidth, s.config.World.ScreenHeight
	px, py := ox+float64(sw)/2, oy+float64(sh)/2
	if playerID, ok := findPlayer(s.entityManager); ok {
		px, py, _ = entityCenter(s.entityManager, playerID)
	}

	var x, y float64
	for attempt := 0; attempt < s.config.World.SpawnMaxAttempts; attempt++ {
		x = ox + float64(s.rng.Intn(max(1, sw-width)))
		y = oy + float64(s.rng.Intn(max(1, sh-height)))
		_, _, dist := normalize(x+float64(width)/2-px, y+float64(height)/2-py)
		if dist >= s.config.World.SpawnSafeDistance && s.grid.IsValidSpawnPosition(x, y, width, height) {
			return x, y
		}
	}
	return x, y
}

// CheckWaveAdvance 场上没有存活僵尸且本波生成满额时进入下一波
func (s *WaveSpawnSystem) CheckWaveAdvance(liveCount int) bool {
	d := s.difficulty()
	if !s.gameState.AdvanceWaveIfNeeded(liveCount, d.ZombiesPerWave, d.IncreasePercent) {
		return false
	}
	log.Printf("[WaveSpawnSystem] Wave %d started (cap %d)", s.gameState.CurrentWave, s.MaxZombiesForWave())
	return true
}

// ZombieVariety 当前波次可生成的僵尸种类数量
// 1-2 波普通；3-4 波加爬行；5-6 波加坦克；之后全部
func ZombieVariety(wave int) int {
	switch {
	case wave <= 2:
		return 1
	case wave <= 4:
		return 2
	case wave <= 6:
		return 3
	default:
		return types.ZombieKindCount
	}
}
