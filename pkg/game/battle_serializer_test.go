package game

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// buildBattle 构造一个包含玩家、僵尸、子弹、掉落物和地图的战场
func buildBattle(t *testing.T) (*ecs.EntityManager, *GameState, *SimClock, ecs.EntityID) {
	t.Helper()
	em := ecs.NewEntityManager()
	gs := NewGameState(types.DifficultyHard, 2)
	gs.CurrentWave = 3
	gs.ZombiesSpawned = 30
	gs.ZombiesKilled = 27
	gs.ZombiesKilledLastWave = 25
	clock := NewSimClock()
	clock.Advance(42)

	player := em.CreateEntity()
	ecs.AddComponent(em, player, &components.PlayerComponent{CharacterID: 2, Kills: 27, Score: 1350})
	ecs.AddComponent(em, player, &components.PositionComponent{X: 100, Y: 200})
	ecs.AddComponent(em, player, &components.HealthComponent{CurrentHealth: 64, MaxHealth: 100})
	ecs.AddComponent(em, player, &components.FacingComponent{Rotation: 90})
	ecs.AddComponent(em, player, &components.ArsenalComponent{
		Current: 1,
		Weapons: []*components.WeaponState{
			{Kind: types.WeaponPistol, CurrentAmmo: 12},
			{Kind: types.WeaponRifle, CurrentAmmo: 3, Reserve: 60, Reloading: true, ReloadReadyAt: 43000},
		},
	})

	reptile := em.CreateEntity()
	ecs.AddComponent(em, reptile, &components.ZombieComponent{Kind: types.ZombieReptile, Speed: 1.3})
	ecs.AddComponent(em, reptile, &components.PositionComponent{X: 400, Y: 300})
	ecs.AddComponent(em, reptile, &components.HealthComponent{CurrentHealth: 40, MaxHealth: 100})
	ecs.AddComponent(em, reptile, &components.ReptileJumpComponent{State: components.ReptileJumping, DirX: 1, Traveled: 120})

	tank := em.CreateEntity()
	ecs.AddComponent(em, tank, &components.ZombieComponent{Kind: types.ZombieTank, Speed: 0.78})
	ecs.AddComponent(em, tank, &components.PositionComponent{X: 500, Y: 300})
	ecs.AddComponent(em, tank, &components.HealthComponent{CurrentHealth: 300, MaxHealth: 300})

	bullet := em.CreateEntity()
	b := &components.BulletComponent{DirX: 1, Speed: 40, Weapon: types.WeaponSniper, Damage: 100, Pierce: true}
	b.MarkHit(tank)
	ecs.AddComponent(em, bullet, b)
	ecs.AddComponent(em, bullet, &components.PositionComponent{X: 520, Y: 310})
	ecs.AddComponent(em, bullet, &components.CollisionComponent{Width: 32, Height: 32})

	drop := em.CreateEntity()
	ecs.AddComponent(em, drop, &components.DropComponent{Kind: types.DropAmmo, AmmoAmount: 30, Weapon: types.WeaponShotgun})
	ecs.AddComponent(em, drop, &components.PositionComponent{X: 50, Y: 60})
	ecs.AddComponent(em, drop, &components.CollisionComponent{Width: 40, Height: 40})

	grid := em.CreateEntity()
	ecs.AddComponent(em, grid, &components.TileGridComponent{
		OffsetX: -10,
		OffsetY: 20,
		Cells: map[components.CellKey]int{
			{X: 1, Y: 0}: 2,
			{X: 0, Y: 0}: 0,
			{X: 0, Y: -1}: 5,
		},
	})
	return em, gs, clock, player
}

func TestBattleSerializerCollect(t *testing.T) {
	em, gs, clock, _ := buildBattle(t)
	s := NewBattleSerializer(nil)

	data, err := s.Collect(em, gs, clock)
	require.NoError(t, err)

	assert.Equal(t, BattleSaveVersion, data.Version)
	assert.Equal(t, gs.SessionID, data.SessionID)
	assert.Equal(t, int64(42000), data.ClockMs)
	assert.Equal(t, "hard", data.Difficulty)
	assert.Equal(t, 3, data.CurrentWave)
	assert.Equal(t, 25, data.ZombiesKilledLastWave)

	assert.Equal(t, 64, data.Player.Health)
	assert.Equal(t, 1350, data.Player.Score)
	require.Len(t, data.Player.Weapons, 2)
	assert.True(t, data.Player.Weapons[1].Reloading)
	assert.Equal(t, 1, data.Player.Current)

	require.Len(t, data.Zombies, 2)
	require.NotNil(t, data.Zombies[0].Jump)
	assert.True(t, data.Zombies[0].Jump.Jumping)
	assert.Nil(t, data.Zombies[1].Jump)

	require.Len(t, data.Bullets, 1)
	assert.Equal(t, []int{1}, data.Bullets[0].HitZombies, "命中集合以僵尸下标保存")

	require.Len(t, data.Drops, 1)
	assert.Equal(t, "shotgun", data.Drops[0].Weapon)

	assert.Equal(t, []CellData{{X: 0, Y: -1, Variant: 5}, {X: 0, Y: 0, Variant: 0}, {X: 1, Y: 0, Variant: 2}}, data.Grid.Cells)
}

func TestBattleSerializerCollectSkipsDestroyed(t *testing.T) {
	em, gs, clock, _ := buildBattle(t)
	zombies := ecs.GetEntitiesWith1[*components.ZombieComponent](em)
	em.DestroyEntity(zombies[0])

	data, err := NewBattleSerializer(nil).Collect(em, gs, clock)
	require.NoError(t, err)
	assert.Len(t, data.Zombies, 1)
	assert.Equal(t, []int{0}, data.Bullets[0].HitZombies)
}

func TestBattleSerializerErrors(t *testing.T) {
	s := NewBattleSerializer(nil)

	t.Run("EntityManager 为空", func(t *testing.T) {
		_, err := s.Collect(nil, NewGameState(types.DifficultyNormal, 1), nil)
		assert.Error(t, err)
	})

	t.Run("GameState 为空", func(t *testing.T) {
		_, err := s.Collect(ecs.NewEntityManager(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("没有玩家", func(t *testing.T) {
		_, err := s.Collect(ecs.NewEntityManager(), NewGameState(types.DifficultyNormal, 1), nil)
		assert.Error(t, err)
	})

	t.Run("版本不兼容", func(t *testing.T) {
		b, err := msgpack.Marshal(&BattleSaveData{Version: BattleSaveVersion + 1})
		require.NoError(t, err)
		_, err = s.Decode(b)
		assert.ErrorContains(t, err, "incompatible save version")
	})

	t.Run("数据损坏", func(t *testing.T) {
		_, err := s.Decode([]byte{0xc1, 0x00})
		assert.Error(t, err)
	})

	t.Run("未配置存储", func(t *testing.T) {
		assert.Error(t, s.SaveBattle("", NewBattleSaveData()))
		_, err := s.LoadBattle("")
		assert.Error(t, err)
		assert.False(t, s.HasSave(""))
	})
}

func TestBattleSerializerSaveLoad(t *testing.T) {
	em, gs, clock, _ := buildBattle(t)
	store := persistence.NewMemoryStore()
	s := NewBattleSerializer(store)

	_, err := s.LoadBattle("")
	assert.ErrorIs(t, err, ErrNoSave)

	data, err := s.Collect(em, gs, clock)
	require.NoError(t, err)
	require.NoError(t, s.SaveBattle("", data))
	assert.True(t, s.HasSave(DefaultSaveSlot))

	loaded, err := s.LoadBattle(DefaultSaveSlot)
	require.NoError(t, err)
	assert.Equal(t, data.SessionID, loaded.SessionID)
	assert.Equal(t, data.Player, loaded.Player)
	assert.Equal(t, data.Zombies, loaded.Zombies)
	assert.Equal(t, data.Bullets, loaded.Bullets)
	assert.Equal(t, data.Grid, loaded.Grid)
	assert.True(t, data.SaveTime.Equal(loaded.SaveTime))

	require.NoError(t, s.DeleteSave(""))
	assert.False(t, s.HasSave(""))
}
