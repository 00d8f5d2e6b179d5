package entities

import (
	"math"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
)

// NewPlayerBullet 创建玩家子弹，碰撞盒中心位于 (cx, cy)
//
// 参数:
//   - weapon: 发射武器，决定伤害、穿透和爆炸半径
//   - angleDeg: 飞行方向（度），0 指向 +X，顺时针为正
func NewPlayerBullet(em *ecs.EntityManager, cfg *config.GameConfig, weapon *components.WeaponState, cx, cy, angleDeg float64) ecs.EntityID {
	size := cfg.Bullet.Size
	if weapon.BlastRadius > 0 {
		size = cfg.Bullet.RocketSize
	}
	rad := angleDeg * math.Pi / 180
	return newBullet(em, size, cx, cy, &components.BulletComponent{
		DirX:        math.Cos(rad),
		DirY:        math.Sin(rad),
		Rotation:    angleDeg,
		Speed:       cfg.Bullet.Speed,
		Weapon:      weapon.Kind,
		Damage:      weapon.Damage,
		Pierce:      weapon.Pierce,
		BlastRadius: weapon.BlastRadius,
	})
}

// NewAcidBullet 创建酸液僵尸的子弹，飞向 (targetX, targetY)
// 速度为普通子弹的 AcidSpeedRatio 倍，只能伤害玩家
func NewAcidBullet(em *ecs.EntityManager, cfg *config.GameConfig, damage int, cx, cy, targetX, targetY float64) ecs.EntityID {
	dx, dy := targetX-cx, targetY-cy
	dist := math.Hypot(dx, dy)
	dirX, dirY := 1.0, 0.0
	if dist > 0 {
		dirX, dirY = dx/dist, dy/dist
	}
	return newBullet(em, cfg.Bullet.AcidSize, cx, cy, &components.BulletComponent{
		DirX:         dirX,
		DirY:         dirY,
		Rotation:     math.Atan2(dirY, dirX) * 180 / math.Pi,
		Speed:        cfg.Bullet.Speed * cfg.Bullet.AcidSpeedRatio,
		Weapon:       types.WeaponPistol,
		Damage:       damage,
		ZombieBullet: true,
	})
}

// RestoreBullet 按存档数据重建子弹（位置为左上角）
func RestoreBullet(em *ecs.EntityManager, x, y float64, width, height int, bullet *components.BulletComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Width: width, Height: height})
	ecs.AddComponent(em, id, bullet)
	return id
}

func newBullet(em *ecs.EntityManager, size int, cx, cy float64, bullet *components.BulletComponent) ecs.EntityID {
	half := float64(size) / 2
	return RestoreBullet(em, cx-half, cy-half, size, size, bullet)
}
