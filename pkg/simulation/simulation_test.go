package simulation

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/decker502/zombieshot/pkg/systems"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSimulation 所有格子都是地板、不掉落物品的确定性对局
func newTestSimulation(t *testing.T, store persistence.Store) *Simulation {
	t.Helper()
	cfg := config.DefaultGameConfig()
	cfg.World.FloorChance = 1
	cfg.Drops.HealthChance = 0
	cfg.Drops.AmmoChance = 0

	sim, err := New(Options{
		Config:      cfg,
		Difficulty:  types.DifficultyNormal,
		CharacterID: 2,
		Seed:        7,
		Store:       store,
	})
	require.NoError(t, err)
	return sim
}

func addZombie(t *testing.T, sim *Simulation, kind types.ZombieKind, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewZombie(sim.EntityManager(), sim.Config(), kind, x, y, 1, sim.Clock().Now())
	require.NoError(t, err)
	return id
}

func countWith[T any](sim *Simulation) int {
	return len(ecs.GetEntitiesWith1[T](sim.EntityManager()))
}

func TestNew(t *testing.T) {
	sim := newTestSimulation(t, nil)

	cx, cy := sim.PlayerCenter()
	assert.Equal(t, 640.0, cx)
	assert.Equal(t, 360.0, cy)
	ox, oy := sim.Grid().Offset()
	assert.Equal(t, 0.0, ox)
	assert.Equal(t, 0.0, oy)

	hud := sim.HUD()
	assert.Equal(t, 1, hud.Wave)
	assert.Equal(t, 100, hud.Health)
	assert.Equal(t, types.WeaponPistol, hud.Weapon)
	assert.Equal(t, 12, hud.Ammo)
	assert.True(t, hud.InfiniteReserve)
	assert.Equal(t, 10, hud.ZombiesRemaining)
	assert.Equal(t, 2, sim.GameState().CharacterID)

	t.Run("每秒 tick 数必须为正", func(t *testing.T) {
		cfg := config.DefaultGameConfig()
		cfg.World.TicksPerSecond = 0
		_, err := New(Options{Config: cfg})
		assert.Error(t, err)
	})
}

func TestTick(t *testing.T) {
	t.Run("推进时钟并按间隔刷怪", func(t *testing.T) {
		sim := newTestSimulation(t, nil)
		for i := 0; i < 30; i++ {
			sim.Tick(InputState{})
		}
		assert.InDelta(t, 500, sim.Clock().Now(), 1)
		assert.Equal(t, 1, sim.GameState().ZombiesSpawned)
		assert.Equal(t, 1, systems.LiveZombies(sim.EntityManager()))
	})

	t.Run("开火生成子弹", func(t *testing.T) {
		sim := newTestSimulation(t, nil)
		sim.Tick(InputState{Fire: true, AimDeg: 0})
		assert.Equal(t, 1, countWith[*components.BulletComponent](sim))
		assert.Equal(t, 11, sim.HUD().Ammo)
	})

	t.Run("数字键切换武器，越界被忽略", func(t *testing.T) {
		sim := newTestSimulation(t, nil)
		sim.Tick(InputState{SelectWeapon: 2})
		assert.Equal(t, types.WeaponRifle, sim.HUD().Weapon)
		sim.Tick(InputState{SelectWeapon: 9})
		assert.Equal(t, types.WeaponRifle, sim.HUD().Weapon)
	})

	t.Run("换弹在时钟到期后完成", func(t *testing.T) {
		sim := newTestSimulation(t, nil)
		require.True(t, sim.SelectWeapon(int(types.WeaponRifle)))
		sim.CurrentWeapon().CurrentAmmo = 0

		sim.Tick(InputState{Reload: true})
		assert.True(t, sim.HUD().Reloading)

		for i := 0; i < 130 && sim.HUD().Reloading; i++ {
			sim.Tick(InputState{})
		}
		hud := sim.HUD()
		assert.False(t, hud.Reloading)
		assert.Equal(t, 30, hud.Ammo)
		assert.Equal(t, 60, hud.Reserve)
	})

	t.Run("移动后镜头跟随玩家", func(t *testing.T) {
		sim := newTestSimulation(t, nil)
		sim.Tick(InputState{Move: systems.MoveIntent{Right: true}})
		cx, _ := sim.PlayerCenter()
		assert.Equal(t, 645.0, cx)
		ox, _ := sim.Grid().Offset()
		assert.Equal(t, 5.0, ox)
	})
}

func TestPause(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.Tick(InputState{})
	now := sim.Clock().Now()
	accumulated := sim.GameState().SpawnAccumulatorMs

	sim.Tick(InputState{Pause: true})
	assert.True(t, sim.HUD().Paused)
	assert.Equal(t, now, sim.Clock().Now(), "暂停的 tick 不推进时钟")

	for i := 0; i < 60; i++ {
		sim.Tick(InputState{Fire: true})
	}
	assert.Equal(t, now, sim.Clock().Now())
	assert.Zero(t, countWith[*components.BulletComponent](sim))
	assert.Equal(t, accumulated, sim.GameState().SpawnAccumulatorMs)

	sim.Tick(InputState{Pause: true})
	assert.False(t, sim.HUD().Paused)
	assert.Greater(t, sim.Clock().Now(), now)
}

func TestGameOver(t *testing.T) {
	store := persistence.NewMemoryStore()
	sim := newTestSimulation(t, store)
	player, _ := ecs.GetComponent[*components.PlayerComponent](sim.EntityManager(), sim.Player())
	player.Score = 1200
	player.Kills = 9
	health, _ := ecs.GetComponent[*components.HealthComponent](sim.EntityManager(), sim.Player())
	health.CurrentHealth = -5

	sim.Tick(InputState{})

	hud := sim.HUD()
	assert.True(t, hud.GameOver)
	assert.Equal(t, 0, hud.Health, "生命值归零")
	assert.Equal(t, 1, hud.Rank)
	assert.Equal(t, 1200, hud.BestScore)

	now := sim.Clock().Now()
	sim.Tick(InputState{Fire: true, Pause: true})
	assert.Equal(t, now, sim.Clock().Now(), "对局结束后不再推进")
	assert.False(t, sim.HUD().Paused)

	board := game.NewHighScoreBoard(store, 0)
	require.Len(t, board.Top(), 1)
	assert.Equal(t, 9, board.Top()[0].Kills)
	assert.Equal(t, sim.GameState().SessionID, board.Top()[0].SessionID)
}

func TestLethalHitEndsGameSameTick(t *testing.T) {
	store := persistence.NewMemoryStore()
	sim := newTestSimulation(t, store)
	health, _ := ecs.GetComponent[*components.HealthComponent](sim.EntityManager(), sim.Player())
	health.CurrentHealth = 5

	cx, cy := sim.PlayerCenter()
	entities.NewAcidBullet(sim.EntityManager(), sim.Config(), 30, cx, cy, cx+100, cy)

	sim.Tick(InputState{})

	hud := sim.HUD()
	assert.Equal(t, 0, hud.Health, "生命值不低于 0")
	assert.True(t, hud.GameOver, "致命伤害当帧即结束对局")
	assert.Equal(t, 1, hud.Rank)
	assert.Equal(t, 0, sim.Snapshot().Player.Health)
	assert.Len(t, game.NewHighScoreBoard(store, 0).Top(), 1, "成绩只提交一次")

	sim.Tick(InputState{})
	assert.Len(t, game.NewHighScoreBoard(store, 0).Top(), 1)
}

func TestSetDifficulty(t *testing.T) {
	sim := newTestSimulation(t, nil)
	zombie := addZombie(t, sim, types.ZombieNormal, 100, 100)
	z, _ := ecs.GetComponent[*components.ZombieComponent](sim.EntityManager(), zombie)

	sim.SetDifficulty(types.DifficultyHard)
	assert.InDelta(t, 1.3, z.Speed, 1e-9)
	assert.Equal(t, types.DifficultyHard, sim.GameState().Difficulty)

	sim.SetDifficulty(types.DifficultyNormal)
	assert.InDelta(t, 1.0, z.Speed, 1e-9)
}

func TestSetDifficultyMidWaveLowersCap(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.World.FloorChance = 1
	sim, err := New(Options{Config: cfg, Difficulty: types.DifficultyHard, Seed: 3})
	require.NoError(t, err)

	gs := sim.GameState()
	gs.ZombiesSpawned = 12
	gs.ZombiesKilled = 12

	sim.SetDifficulty(types.DifficultyNormal)
	require.Equal(t, 10, sim.spawnSystem.MaxZombiesForWave())

	_, spawned := sim.spawnSystem.SpawnZombie()
	assert.False(t, spawned, "本波已超出新上限，不再生成")

	assert.True(t, sim.spawnSystem.CheckWaveAdvance(0), "清场后应进入下一波")
	assert.Equal(t, 2, gs.CurrentWave)
	assert.Equal(t, 27, sim.spawnSystem.MaxZombiesForWave())

	_, spawned = sim.spawnSystem.SpawnZombie()
	assert.True(t, spawned, "新一波恢复生成")
}

func TestRestart(t *testing.T) {
	sim := newTestSimulation(t, nil)
	addZombie(t, sim, types.ZombieTank, 100, 100)
	entities.NewAmmoDrop(sim.EntityManager(), sim.Config(), 100, 600, types.WeaponRifle, 10)
	sim.Tick(InputState{Fire: true, Move: systems.MoveIntent{Down: true}})
	sim.GameState().CurrentWave = 4
	sim.SetPaused(true)
	oldPlayer := sim.Player()
	oldSession := sim.GameState().SessionID
	health, _ := ecs.GetComponent[*components.HealthComponent](sim.EntityManager(), oldPlayer)
	health.CurrentHealth = 0

	require.NoError(t, sim.Restart())

	assert.NotEqual(t, oldPlayer, sim.Player())
	assert.NotEqual(t, oldSession, sim.GameState().SessionID)
	assert.Zero(t, countWith[*components.ZombieComponent](sim))
	assert.Zero(t, countWith[*components.BulletComponent](sim))
	assert.Zero(t, countWith[*components.DropComponent](sim))
	assert.Equal(t, 1, countWith[*components.PlayerComponent](sim))
	assert.Equal(t, 1, countWith[*components.TileGridComponent](sim), "地图保留")

	hud := sim.HUD()
	assert.Equal(t, 1, hud.Wave)
	assert.Equal(t, 100, hud.Health)
	assert.False(t, hud.Paused)
	assert.False(t, sim.Clock().Paused())

	cx, cy := sim.PlayerCenter()
	ox, oy := sim.Grid().Offset()
	assert.Equal(t, ox+640, cx)
	assert.Equal(t, oy+360, cy)
}

func TestAimAngle(t *testing.T) {
	assert.InDelta(t, 0, AimAngle(0, 0, 10, 0), 1e-9)
	assert.InDelta(t, 90, AimAngle(0, 0, 0, 10), 1e-9)
	assert.InDelta(t, 180, AimAngle(0, 0, -10, 0), 1e-9)
	assert.InDelta(t, -45, AimAngle(0, 0, 10, -10), 1e-9)
}
