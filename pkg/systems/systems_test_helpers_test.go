package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/require"
)

const tickDt = 1.0 / 60

// testWorld 系统测试用的最小战场
// 屏幕 1280x720，玩家中心位于 (640, 360)，镜头偏移为 (0, 0)，所有格子都是地板
type testWorld struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	gs     *game.GameState
	clock  *game.SimClock
	rng    *rand.Rand
	player ecs.EntityID

	grid       *TileGridSystem
	weapons    *WeaponSystem
	movement   *PlayerMovementSystem
	zombies    *ZombieBehaviorSystem
	loot       *LootSystem
	projectile *ProjectileSystem
	spawner    *WaveSpawnSystem
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	cfg.World.FloorChance = 1
	cfg.Drops.HealthChance = 0
	cfg.Drops.AmmoChance = 0

	w := &testWorld{
		em:    ecs.NewEntityManager(),
		cfg:   cfg,
		gs:    game.NewGameState(types.DifficultyNormal, 1),
		clock: game.NewSimClock(),
		rng:   rand.New(rand.NewSource(42)),
	}

	gridID := entities.NewTileGrid(w.em, cfg)
	w.grid = NewTileGridSystem(w.em, cfg, gridID, w.rng)

	player, err := entities.NewPlayer(w.em, cfg, nil, 608, 328, 1)
	require.NoError(t, err)
	w.player = player
	w.grid.CenterOn(640, 360)

	sound := game.NopSoundPlayer{}
	w.weapons = NewWeaponSystem(w.em, cfg, w.clock, sound, w.rng)
	w.movement = NewPlayerMovementSystem(w.em, cfg, w.clock, w.grid)
	w.zombies = NewZombieBehaviorSystem(w.em, cfg, w.clock, sound, w.grid)
	w.loot = NewLootSystem(w.em, cfg, w.gs, sound, w.rng)
	w.projectile = NewProjectileSystem(w.em, cfg, w.gs, w.clock, sound, w.grid, w.loot)
	w.spawner = NewWaveSpawnSystem(w.em, cfg, w.gs, w.clock, w.grid, w.rng)
	return w
}

// advance 推进模拟时钟（整毫秒）
func (w *testWorld) advance(ms int64) {
	w.clock.Restore(w.clock.Now() + ms)
}

// spawnZombieAt 在中心 (cx, cy) 处生成僵尸
func (w *testWorld) spawnZombieAt(t *testing.T, kind types.ZombieKind, cx, cy float64) ecs.EntityID {
	t.Helper()
	stats, ok := w.cfg.Zombie(kind)
	require.True(t, ok)
	id, err := entities.NewZombie(w.em, w.cfg, kind, cx-float64(stats.Width)/2, cy-float64(stats.Height)/2, 1, w.clock.Now())
	require.NoError(t, err)
	return id
}

func (w *testWorld) arsenal(t *testing.T) *components.ArsenalComponent {
	t.Helper()
	a, ok := ecs.GetComponent[*components.ArsenalComponent](w.em, w.player)
	require.True(t, ok)
	return a
}

func (w *testWorld) playerHealth(t *testing.T) *components.HealthComponent {
	t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](w.em, w.player)
	require.True(t, ok)
	return h
}

func (w *testWorld) health(t *testing.T, id ecs.EntityID) *components.HealthComponent {
	t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](w.em, id)
	require.True(t, ok)
	return h
}

// setObstacle 把格子设置为障碍物
func (w *testWorld) setObstacle(cellX, cellY int) {
	grid, _ := ecs.GetComponent[*components.TileGridComponent](w.em, w.grid.GridEntity())
	grid.Cells[components.CellKey{X: cellX, Y: cellY}] = w.cfg.World.ObstacleVariants[0]
}

func (w *testWorld) bullets() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.BulletComponent](w.em)
}
