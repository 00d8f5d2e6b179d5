package systems

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveSpawn(t *testing.T) {
	t.Run("按间隔生成并远离玩家", func(t *testing.T) {
		w := newTestWorld(t)
		assert.Equal(t, 0, w.spawner.Update(399))
		assert.Equal(t, 1, w.spawner.Update(1))
		assert.Equal(t, int64(0), w.gs.SpawnAccumulatorMs)

		ids := ecs.GetEntitiesWith1[*components.ZombieComponent](w.em)
		require.Len(t, ids, 1)
		zx, zy, _ := entityCenter(w.em, ids[0])
		_, _, dist := normalize(zx-640, zy-360)
		assert.GreaterOrEqual(t, dist, w.cfg.World.SpawnSafeDistance)

		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, ids[0])
		assert.GreaterOrEqual(t, pos.X, 0.0)
		assert.Less(t, pos.X, float64(w.cfg.World.ScreenWidth))
		assert.GreaterOrEqual(t, pos.Y, 0.0)
		assert.Less(t, pos.Y, float64(w.cfg.World.ScreenHeight))
	})

	t.Run("达到本波上限后不再生成", func(t *testing.T) {
		w := newTestWorld(t)
		spawned := w.spawner.Update(400 * 30)
		assert.Equal(t, 10, spawned)
		assert.Equal(t, 10, w.gs.ZombiesSpawned)
		assert.Equal(t, 10, LiveZombies(w.em))

		_, ok := w.spawner.SpawnZombie()
		assert.False(t, ok)
	})

	t.Run("第一波只有普通僵尸", func(t *testing.T) {
		w := newTestWorld(t)
		w.spawner.Update(400 * 10)
		for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](w.em) {
			z, _ := ecs.GetComponent[*components.ZombieComponent](w.em, id)
			assert.Equal(t, types.ZombieNormal, z.Kind)
		}
	})

	t.Run("困难难度更快生成且速度更高", func(t *testing.T) {
		w := newTestWorld(t)
		w.gs.Difficulty = types.DifficultyHard
		assert.Equal(t, 1, w.spawner.Update(200))

		ids := ecs.GetEntitiesWith1[*components.ZombieComponent](w.em)
		require.Len(t, ids, 1)
		z, _ := ecs.GetComponent[*components.ZombieComponent](w.em, ids[0])
		assert.InDelta(t, z.BaseSpeed*1.3, z.Speed, 1e-9)
	})
}

func TestCheckWaveAdvance(t *testing.T) {
	w := newTestWorld(t)
	w.spawner.Update(400 * 10)
	require.Equal(t, 10, w.gs.ZombiesSpawned)

	assert.False(t, w.spawner.CheckWaveAdvance(LiveZombies(w.em)), "场上还有僵尸")

	for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](w.em) {
		require.True(t, w.projectile.DamageZombie(id, 1000))
	}
	w.em.RemoveMarkedEntities()

	assert.True(t, w.spawner.CheckWaveAdvance(LiveZombies(w.em)))
	assert.Equal(t, 2, w.gs.CurrentWave)
	assert.Equal(t, 25, w.spawner.MaxZombiesForWave())
	assert.False(t, w.spawner.CheckWaveAdvance(0), "新一波尚未生成满额")
}

func TestZombieVariety(t *testing.T) {
	tests := []struct {
		wave int
		want int
	}{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {6, 3}, {7, 4}, {20, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZombieVariety(tt.wave), "wave %d", tt.wave)
	}
}
