package systems

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZombieMeleeAttack(t *testing.T) {
	w := newTestWorld(t)
	zombie := w.spawnZombieAt(t, types.ZombieNormal, 690, 360)

	w.zombies.Update(tickDt)
	assert.Equal(t, 90, w.playerHealth(t).CurrentHealth, "首次攻击不受冷却限制")

	w.zombies.Update(tickDt)
	assert.Equal(t, 90, w.playerHealth(t).CurrentHealth, "冷却中不攻击")

	w.advance(1000)
	w.zombies.Update(tickDt)
	assert.Equal(t, 80, w.playerHealth(t).CurrentHealth)

	z, _ := ecs.GetComponent[*components.ZombieComponent](w.em, zombie)
	assert.Equal(t, int64(1000), z.LastAttackAt)
}

func TestZombieChase(t *testing.T) {
	w := newTestWorld(t)
	zombie := w.spawnZombieAt(t, types.ZombieNormal, 940, 360)
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, zombie)
	startX := pos.X

	w.zombies.Update(tickDt)

	assert.InDelta(t, startX-1, pos.X, 1e-9, "以 1 像素/tick 向玩家移动")
	assert.Equal(t, 100, w.playerHealth(t).CurrentHealth)
	facing, _ := ecs.GetComponent[*components.FacingComponent](w.em, zombie)
	assert.True(t, facing.FacingLeft)
}

func TestAcidicZombieSpits(t *testing.T) {
	w := newTestWorld(t)
	w.spawnZombieAt(t, types.ZombieAcidic, 940, 360)

	w.zombies.Update(tickDt)
	ids := w.bullets()
	require.Len(t, ids, 1)
	bullet, _ := ecs.GetComponent[*components.BulletComponent](w.em, ids[0])
	assert.True(t, bullet.ZombieBullet)
	assert.InDelta(t, -1, bullet.DirX, 1e-9)
	assert.Equal(t, w.cfg.Bullet.Speed*w.cfg.Bullet.AcidSpeedRatio, bullet.Speed)
	assert.Equal(t, 100, w.playerHealth(t).CurrentHealth, "远程攻击不造成接触伤害")

	w.zombies.Update(tickDt)
	assert.Len(t, w.bullets(), 1)
}

func TestReptileJump(t *testing.T) {
	t.Run("冷却结束后跳跃冲刺并回到追击", func(t *testing.T) {
		w := newTestWorld(t)
		reptile := w.spawnZombieAt(t, types.ZombieReptile, 990, 360)
		jump, _ := ecs.GetComponent[*components.ReptileJumpComponent](w.em, reptile)
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, reptile)

		w.zombies.Update(tickDt)
		assert.Equal(t, components.ReptileChasing, jump.State, "冷却未结束")

		w.advance(3000)
		x := pos.X
		w.zombies.Update(tickDt)
		assert.Equal(t, components.ReptileJumping, jump.State)
		assert.InDelta(t, x-20, pos.X, 1e-9)
		assert.Equal(t, int64(3000), jump.LastJumpAt)

		for i := 0; i < 14; i++ {
			w.zombies.Update(tickDt)
		}
		assert.Equal(t, components.ReptileChasing, jump.State)
		assert.InDelta(t, 300, jump.Traveled, 1e-9)
	})

	t.Run("跳跃受阻时回到追击", func(t *testing.T) {
		w := newTestWorld(t)
		reptile := w.spawnZombieAt(t, types.ZombieReptile, 970, 360)
		jump, _ := ecs.GetComponent[*components.ReptileJumpComponent](w.em, reptile)
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, reptile)
		jump.LastJumpAt = -jump.CooldownMs
		w.setObstacle(14, 6)

		x, y := pos.X, pos.Y
		w.zombies.Update(tickDt)
		assert.Equal(t, components.ReptileChasing, jump.State)
		assert.Equal(t, x, pos.X)
		assert.Equal(t, y, pos.Y)
	})
}

func TestRescaleSpeed(t *testing.T) {
	w := newTestWorld(t)
	zombie := w.spawnZombieAt(t, types.ZombieNormal, 940, 360)
	w.zombies.RescaleSpeed(1.0, 1.3)

	z, _ := ecs.GetComponent[*components.ZombieComponent](w.em, zombie)
	assert.InDelta(t, 1.3, z.Speed, 1e-9)
	assert.Equal(t, 1.0, z.BaseSpeed)

	w.zombies.RescaleSpeed(0, 2)
	assert.InDelta(t, 1.3, z.Speed, 1e-9, "非法倍率被忽略")
}

func TestLiveZombies(t *testing.T) {
	w := newTestWorld(t)
	first := w.spawnZombieAt(t, types.ZombieNormal, 940, 360)
	w.spawnZombieAt(t, types.ZombieTank, 340, 360)
	assert.Equal(t, 2, LiveZombies(w.em))

	w.em.DestroyEntity(first)
	assert.Equal(t, 1, LiveZombies(w.em))
}
