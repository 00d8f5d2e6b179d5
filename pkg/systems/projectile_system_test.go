package systems

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestProjectileMovement(t *testing.T) {
	w := newTestWorld(t)
	pistol := w.arsenal(t).WeaponOf(types.WeaponPistol)

	far := entities.NewPlayerBullet(w.em, w.cfg, pistol, 2560, 360, 0)
	near := entities.NewPlayerBullet(w.em, w.cfg, pistol, 2500, 360, 0)

	w.projectile.Update(tickDt)

	assert.True(t, w.em.IsMarkedForDestroy(far), "超出两倍屏幕宽度的子弹被移除")
	assert.False(t, w.em.IsMarkedForDestroy(near))
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, near)
	assert.InDelta(t, 2500-16+w.cfg.Bullet.Speed, pos.X, 1e-9)

	w.em.RemoveMarkedEntities()
	assert.Len(t, w.bullets(), 1)
}

func TestProjectileHits(t *testing.T) {
	t.Run("普通子弹命中后消失", func(t *testing.T) {
		w := newTestWorld(t)
		zombie := w.spawnZombieAt(t, types.ZombieNormal, 800, 360)
		bullet := entities.NewPlayerBullet(w.em, w.cfg, w.arsenal(t).WeaponOf(types.WeaponPistol), 780, 360, 0)

		w.projectile.Update(tickDt)

		assert.Equal(t, 80, w.health(t, zombie).CurrentHealth)
		assert.True(t, w.em.IsMarkedForDestroy(bullet))
		assert.True(t, ecs.HasComponent[*components.FlashEffectComponent](w.em, zombie))
	})

	t.Run("狙击弹穿透且每个僵尸只命中一次", func(t *testing.T) {
		w := newTestWorld(t)
		first := w.spawnZombieAt(t, types.ZombieNormal, 800, 360)
		second := w.spawnZombieAt(t, types.ZombieNormal, 850, 360)
		bullet := entities.NewPlayerBullet(w.em, w.cfg, w.arsenal(t).WeaponOf(types.WeaponSniper), 780, 360, 0)

		w.projectile.Update(tickDt)
		assert.Equal(t, 40, w.health(t, first).CurrentHealth)
		assert.Equal(t, 40, w.health(t, second).CurrentHealth)
		assert.False(t, w.em.IsMarkedForDestroy(bullet))

		w.projectile.Update(tickDt)
		assert.Equal(t, 40, w.health(t, first).CurrentHealth)
		assert.Equal(t, 40, w.health(t, second).CurrentHealth)
	})

	t.Run("火箭弹只伤害半径内的僵尸", func(t *testing.T) {
		w := newTestWorld(t)
		struck := w.spawnZombieAt(t, types.ZombieNormal, 800, 360)
		inside := w.spawnZombieAt(t, types.ZombieNormal, 950, 360)
		edge := w.spawnZombieAt(t, types.ZombieNormal, 1000, 360)
		outside := w.spawnZombieAt(t, types.ZombieNormal, 1050, 360)
		bullet := entities.NewPlayerBullet(w.em, w.cfg, w.arsenal(t).WeaponOf(types.WeaponRocketLauncher), 780, 360, 0)

		w.projectile.Update(tickDt)

		assert.Equal(t, 20, w.health(t, struck).CurrentHealth)
		assert.Equal(t, 20, w.health(t, inside).CurrentHealth)
		assert.Equal(t, 100, w.health(t, edge).CurrentHealth, "距离等于半径不受伤害")
		assert.Equal(t, 100, w.health(t, outside).CurrentHealth)
		assert.True(t, w.em.IsMarkedForDestroy(bullet))
		assert.Len(t, ecs.GetEntitiesWith1[*components.ExplosionComponent](w.em), 1)
	})

	t.Run("僵尸子弹只伤害玩家", func(t *testing.T) {
		w := newTestWorld(t)
		zombie := w.spawnZombieAt(t, types.ZombieNormal, 600, 360)
		acid := entities.NewAcidBullet(w.em, w.cfg, 10, 600, 360, 640, 360)

		w.projectile.Update(tickDt)

		assert.Equal(t, 90, w.playerHealth(t).CurrentHealth)
		assert.Equal(t, 100, w.health(t, zombie).CurrentHealth)
		assert.True(t, w.em.IsMarkedForDestroy(acid))
		assert.True(t, ecs.HasComponent[*components.FlashEffectComponent](w.em, w.player))
	})

	t.Run("玩家生命值不低于 0", func(t *testing.T) {
		w := newTestWorld(t)
		w.playerHealth(t).CurrentHealth = 5
		entities.NewAcidBullet(w.em, w.cfg, 30, 640, 360, 740, 360)

		w.projectile.Update(tickDt)

		assert.Equal(t, 0, w.playerHealth(t).CurrentHealth)
	})
}

func TestAcidicChainReaction(t *testing.T) {
	w := newTestWorld(t)
	var acidic []ecs.EntityID
	for _, cx := range []float64{800, 900, 1000} {
		id := w.spawnZombieAt(t, types.ZombieAcidic, cx, 360)
		w.health(t, id).CurrentHealth = 10
		acidic = append(acidic, id)
	}
	bystander := w.spawnZombieAt(t, types.ZombieNormal, 1100, 360)
	entities.NewPlayerBullet(w.em, w.cfg, w.arsenal(t).WeaponOf(types.WeaponPistol), 780, 360, 0)

	w.projectile.Update(tickDt)

	for _, id := range acidic {
		assert.True(t, w.em.IsMarkedForDestroy(id))
	}
	assert.Equal(t, 3, w.gs.ZombiesKilled, "每个僵尸的死亡只结算一次")
	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, w.player)
	assert.Equal(t, 3, player.Kills)
	assert.Equal(t, 450, player.Score)

	// 第三个酸液僵尸（距离 100）和第二个（距离 200）的爆炸各命中一次，第一个距离正好 300
	assert.Equal(t, 60, w.health(t, bystander).CurrentHealth)
	assert.False(t, w.em.IsMarkedForDestroy(bystander))
}

func TestDamageZombie(t *testing.T) {
	w := newTestWorld(t)
	zombie := w.spawnZombieAt(t, types.ZombieNormal, 900, 360)
	w.health(t, zombie).CurrentHealth = 10

	assert.True(t, w.projectile.DamageZombie(zombie, 20))
	assert.False(t, w.projectile.DamageZombie(zombie, 20), "已死亡的僵尸不会再次死亡")
	assert.Equal(t, 1, w.gs.ZombiesKilled)
	assert.Equal(t, 0, LiveZombies(w.em))

	assert.Equal(t, 0, w.projectile.ApplyBlastDamage(900, 360, 500, 100), "已标记删除的僵尸不受范围伤害")
}
