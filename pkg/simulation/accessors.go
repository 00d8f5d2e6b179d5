package simulation

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/systems"
	"github.com/decker502/zombieshot/pkg/types"
)

// HUD 界面显示所需的汇总数据
type HUD struct {
	Health    int
	MaxHealth int
	Kills     int
	Score     int
	BestScore int

	Wave             int
	ZombiesRemaining int // 本波还需击杀的数量

	Weapon           types.WeaponKind
	Ammo             int
	Reserve          int
	InfiniteReserve  bool
	Reloading        bool
	ReloadProgress   float64
	CooldownProgress float64

	Paused   bool
	GameOver bool
	Rank     int // 对局结束时的排行榜名次，0 表示未上榜
}

// HUD 返回当前 HUD 数据
func (s *Simulation) HUD() HUD {
	hud := HUD{
		Wave:      s.gameState.CurrentWave,
		BestScore: s.highScores.Best(),
		Paused:    s.gameState.IsPaused,
		GameOver:  s.gameState.IsGameOver,
		Rank:      s.lastRank,
	}
	hud.ZombiesRemaining = max(0, s.spawnSystem.MaxZombiesForWave()-s.gameState.ZombiesKilled)
	hud.Kills, hud.Score = s.playerStats()

	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.playerID); ok {
		hud.Health, hud.MaxHealth = health.CurrentHealth, health.MaxHealth
	}
	if w := s.CurrentWeapon(); w != nil {
		hud.Weapon = w.Kind
		hud.Ammo = w.CurrentAmmo
		hud.Reserve = w.Reserve
		hud.InfiniteReserve = w.InfiniteReserve
		hud.Reloading = w.Reloading
		hud.ReloadProgress = s.weaponSystem.ReloadProgress(w)
		hud.CooldownProgress = s.weaponSystem.CooldownProgress(w)
	}
	return hud
}

// CurrentWeapon 玩家当前武器
func (s *Simulation) CurrentWeapon() *components.WeaponState {
	arsenal, ok := ecs.GetComponent[*components.ArsenalComponent](s.entityManager, s.playerID)
	if !ok {
		return nil
	}
	return arsenal.CurrentWeapon()
}

// EntityManager 实体管理器（渲染只读）
func (s *Simulation) EntityManager() *ecs.EntityManager { return s.entityManager }

// Config 游戏配置
func (s *Simulation) Config() *config.GameConfig { return s.config }

// GameState 对局状态
func (s *Simulation) GameState() *game.GameState { return s.gameState }

// Clock 模拟时钟
func (s *Simulation) Clock() *game.SimClock { return s.clock }

// Grid 瓦片地图系统（渲染使用 CellVariant、VisibleCells、Offset）
func (s *Simulation) Grid() *systems.TileGridSystem { return s.gridSystem }

// Player 玩家实体
func (s *Simulation) Player() ecs.EntityID { return s.playerID }

// IsFlashing 实体是否处于受击闪烁中
func (s *Simulation) IsFlashing(id ecs.EntityID) bool { return s.flashSystem.IsFlashing(id) }

// HighScores 排行榜
func (s *Simulation) HighScores() *game.HighScoreBoard { return s.highScores }

// PlayerCenter 玩家中心的世界坐标
func (s *Simulation) PlayerCenter() (float64, float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerID)
	if !ok {
		return s.screenCenter()
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, s.playerID)
	if !ok {
		return pos.X, pos.Y
	}
	return col.Center(pos)
}
