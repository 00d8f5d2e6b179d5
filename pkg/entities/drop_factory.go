package entities

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
)

// NewHealthDrop 在 (cx, cy) 处创建血包
//
// 参数:
//   - heal: 恢复量
//   - variant: 外观编号
func NewHealthDrop(em *ecs.EntityManager, cfg *config.GameConfig, cx, cy float64, heal, variant int) ecs.EntityID {
	return newDrop(em, cfg.Drops.HealthSize, cx, cy, &components.DropComponent{
		Kind:       types.DropHealth,
		HealAmount: heal,
		Variant:    variant,
	})
}

// NewAmmoDrop 在 (cx, cy) 处创建弹药包
func NewAmmoDrop(em *ecs.EntityManager, cfg *config.GameConfig, cx, cy float64, weapon types.WeaponKind, amount int) ecs.EntityID {
	return newDrop(em, cfg.Drops.AmmoSize, cx, cy, &components.DropComponent{
		Kind:       types.DropAmmo,
		AmmoAmount: amount,
		Weapon:     weapon,
	})
}

// RestoreDrop 按存档数据重建掉落物（位置为左上角）
func RestoreDrop(em *ecs.EntityManager, x, y float64, width, height int, drop *components.DropComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Width: width, Height: height})
	ecs.AddComponent(em, id, drop)
	return id
}

func newDrop(em *ecs.EntityManager, size int, cx, cy float64, drop *components.DropComponent) ecs.EntityID {
	half := float64(size) / 2
	return RestoreDrop(em, cx-half, cy-half, size, size, drop)
}
