package simulation

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/decker502/zombieshot/pkg/systems"
	"github.com/decker502/zombieshot/pkg/types"
)

// Options 创建 Simulation 的参数
type Options struct {
	Config      *config.GameConfig
	Difficulty  types.Difficulty
	CharacterID int
	Seed        int64
	Sound       game.SoundPlayer  // 可为 nil（静音）
	Store       persistence.Store // 可为 nil（不能存档，排行榜只在内存中）
}

// Simulation 固定步长的模拟驱动
//
// 持有实体管理器、对局状态、模拟时钟和全部系统，每次 Tick 按固定顺序执行一步：
//  1. 死亡检查（生命值 <= 0 时归零并结束对局）
//  2. 换弹结算、开火
//  3. 玩家移动与镜头
//  4. 子弹、僵尸、拾取
//  5. 特效与闪烁
//  6. 刷怪、清理标记删除的实体、波次推进
//
// 所有状态只在 Tick 中被修改，调用方在两次 Tick 之间读取状态用于渲染。
type Simulation struct {
	config     *config.GameConfig
	rng        *rand.Rand
	sound      game.SoundPlayer
	serializer *game.BattleSerializer
	highScores *game.HighScoreBoard

	entityManager *ecs.EntityManager
	gameState     *game.GameState
	clock         *game.SimClock
	gridEntity    ecs.EntityID
	playerID      ecs.EntityID

	gridSystem       *systems.TileGridSystem
	weaponSystem     *systems.WeaponSystem
	movementSystem   *systems.PlayerMovementSystem
	zombieSystem     *systems.ZombieBehaviorSystem
	lootSystem       *systems.LootSystem
	projectileSystem *systems.ProjectileSystem
	spawnSystem      *systems.WaveSpawnSystem
	flashSystem      *systems.FlashEffectSystem
	lifetimeSystem   *systems.LifetimeSystem

	dt       float64 // 每个 tick 的秒数
	lastRank int     // 最近一次对局结束时的排名，0 表示未上榜
}

// New 创建新的一局
func New(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if cfg.World.TicksPerSecond <= 0 {
		return nil, fmt.Errorf("ticks per second must be positive, got %d", cfg.World.TicksPerSecond)
	}
	sound := opts.Sound
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}

	s := &Simulation{
		config:     cfg,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		sound:      sound,
		serializer: game.NewBattleSerializer(opts.Store),
		highScores: game.NewHighScoreBoard(opts.Store, game.DefaultHighScoreLimit),
		dt:         1 / float64(cfg.World.TicksPerSecond),

		entityManager: ecs.NewEntityManager(),
		gameState:     game.NewGameState(opts.Difficulty, opts.CharacterID),
		clock:         game.NewSimClock(),
	}
	s.gridEntity = entities.NewTileGrid(s.entityManager, cfg)
	s.wire()

	if err := s.spawnPlayer(float64(cfg.World.ScreenWidth)/2, float64(cfg.World.ScreenHeight)/2); err != nil {
		return nil, err
	}
	log.Printf("[Simulation] New session %s: difficulty=%s, character=%d", s.gameState.SessionID, s.gameState.Difficulty, s.gameState.CharacterID)
	return s, nil
}

// wire 基于当前实体管理器、对局状态和时钟创建全部系统
func (s *Simulation) wire() {
	em, cfg := s.entityManager, s.config
	s.gridSystem = systems.NewTileGridSystem(em, cfg, s.gridEntity, s.rng)
	s.weaponSystem = systems.NewWeaponSystem(em, cfg, s.clock, s.sound, s.rng)
	s.movementSystem = systems.NewPlayerMovementSystem(em, cfg, s.clock, s.gridSystem)
	s.zombieSystem = systems.NewZombieBehaviorSystem(em, cfg, s.clock, s.sound, s.gridSystem)
	s.lootSystem = systems.NewLootSystem(em, cfg, s.gameState, s.sound, s.rng)
	s.projectileSystem = systems.NewProjectileSystem(em, cfg, s.gameState, s.clock, s.sound, s.gridSystem, s.lootSystem)
	s.spawnSystem = systems.NewWaveSpawnSystem(em, cfg, s.gameState, s.clock, s.gridSystem, s.rng)
	s.flashSystem = systems.NewFlashEffectSystem(em, s.clock)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)
}

// spawnPlayer 在 (cx, cy) 附近找一个可站立的位置创建玩家，并把镜头对准玩家
func (s *Simulation) spawnPlayer(cx, cy float64) error {
	p := s.config.Player
	x, y, _ := s.gridSystem.FindValidPosition(cx, cy, p.Width, p.Height)
	id, err := entities.NewPlayer(s.entityManager, s.config, s.sound, x, y, s.gameState.CharacterID)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	s.playerID = id
	s.gridSystem.CenterOn(x+float64(p.Width)/2, y+float64(p.Height)/2)
	return nil
}

// Tick 执行一个固定步长
// 暂停或对局结束时只处理暂停键；本帧内玩家死亡时，对局在帧末结束
func (s *Simulation) Tick(input InputState) {
	if input.Pause && !s.gameState.IsGameOver {
		s.TogglePause()
	}
	if s.gameState.IsPaused || s.gameState.IsGameOver {
		return
	}
	if input.SelectWeapon > 0 {
		s.SelectWeapon(input.SelectWeapon - 1)
	}
	if input.Reload {
		s.RequestReload()
	}

	before := s.clock.Now()
	s.clock.Advance(s.dt)
	if s.checkGameOver() {
		return
	}

	s.weaponSystem.Update(s.dt)
	if input.Fire {
		s.weaponSystem.Fire(s.playerID, input.AimDeg)
	}
	s.movementSystem.Update(s.dt, input.Move, input.AimDeg)
	s.gridSystem.Update(s.dt)
	s.projectileSystem.Update(s.dt)
	s.zombieSystem.Update(s.dt)
	s.lootSystem.Update(s.dt)
	s.lifetimeSystem.Update(s.dt)
	s.flashSystem.Update(s.dt)
	s.spawnSystem.Update(s.clock.Now() - before)
	s.entityManager.RemoveMarkedEntities()
	s.spawnSystem.CheckWaveAdvance(systems.LiveZombies(s.entityManager))
	s.checkGameOver()
}

// checkGameOver 玩家生命值 <= 0 时归零、结束对局并提交成绩
func (s *Simulation) checkGameOver() bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.playerID)
	if !ok || health.CurrentHealth > 0 {
		return false
	}
	health.CurrentHealth = 0
	s.gameState.IsGameOver = true

	kills, score := s.playerStats()
	rank, err := s.highScores.Submit(game.HighScoreEntry{
		Score:       score,
		Kills:       kills,
		Wave:        s.gameState.CurrentWave,
		Difficulty:  s.gameState.Difficulty.String(),
		CharacterID: s.gameState.CharacterID,
		SessionID:   s.gameState.SessionID,
	})
	if err != nil {
		log.Printf("[Simulation] Warning: %v", err)
	}
	s.lastRank = rank
	log.Printf("[Simulation] Game over: wave=%d, kills=%d, score=%d, rank=%d", s.gameState.CurrentWave, kills, score, rank)
	return true
}

func (s *Simulation) playerStats() (kills, score int) {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerID); ok {
		return player.Kills, player.Score
	}
	return 0, 0
}

// SetPaused 暂停或继续，暂停期间模拟时钟和刷怪计时都不推进
func (s *Simulation) SetPaused(paused bool) {
	if s.gameState.IsPaused == paused {
		return
	}
	s.gameState.IsPaused = paused
	s.clock.SetPaused(paused)
	log.Printf("[Simulation] Paused=%v", paused)
}

// TogglePause 切换暂停状态
func (s *Simulation) TogglePause() {
	s.SetPaused(!s.gameState.IsPaused)
}

// SetDifficulty 切换难度，场上僵尸速度按新旧倍率之比调整
func (s *Simulation) SetDifficulty(d types.Difficulty) {
	if d == s.gameState.Difficulty {
		return
	}
	oldMult := s.config.Difficulty(s.gameState.Difficulty).SpeedMultiplier
	newMult := s.config.Difficulty(d).SpeedMultiplier
	s.zombieSystem.RescaleSpeed(oldMult, newMult)
	s.gameState.Difficulty = d
	log.Printf("[Simulation] Difficulty changed to %s", d)
}

// Restart 重新开局
// 替换玩家（新的武器栏），清除僵尸、子弹、掉落物和特效，重置波次计数，地图保留
func (s *Simulation) Restart() error {
	cx, cy := s.screenCenter()
	for _, id := range s.entityManager.GetEntitiesWith() {
		if id != s.gridEntity {
			s.entityManager.DestroyEntity(id)
		}
	}
	s.entityManager.RemoveMarkedEntities()

	s.gameState.ResetProgress()
	s.clock.SetPaused(false)
	s.lastRank = 0
	if err := s.spawnPlayer(cx, cy); err != nil {
		return err
	}
	log.Printf("[Simulation] Restarted, new session %s", s.gameState.SessionID)
	return nil
}

// screenCenter 当前镜头中心的世界坐标
func (s *Simulation) screenCenter() (float64, float64) {
	ox, oy := s.gridSystem.Offset()
	return ox + float64(s.config.World.ScreenWidth)/2, oy + float64(s.config.World.ScreenHeight)/2
}

// SelectWeapon 切换到第 index 把武器（从 0 开始），越界时忽略
func (s *Simulation) SelectWeapon(index int) bool {
	return s.weaponSystem.SelectWeapon(s.playerID, index)
}

// RequestReload 为当前武器换弹
func (s *Simulation) RequestReload() bool {
	return s.weaponSystem.ReloadCurrent(s.playerID)
}
