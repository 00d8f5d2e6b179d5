package components

import (
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
)

// BulletComponent 子弹状态
type BulletComponent struct {
	DirX     float64 // 单位方向向量
	DirY     float64
	Rotation float64 // 由方向推导（度）
	Speed    float64

	Weapon       types.WeaponKind // 发射武器（僵尸子弹无意义）
	Damage       int
	ZombieBullet bool // 僵尸发射的子弹只能伤害玩家
	Pierce       bool
	BlastRadius  float64

	// HitSet 已命中过的僵尸，防止同一颗子弹重复命中
	HitSet map[ecs.EntityID]struct{}
}

// HasHit 是否已命中过该僵尸
func (b *BulletComponent) HasHit(id ecs.EntityID) bool {
	_, ok := b.HitSet[id]
	return ok
}

// MarkHit 记录命中
func (b *BulletComponent) MarkHit(id ecs.EntityID) {
	if b.HitSet == nil {
		b.HitSet = make(map[ecs.EntityID]struct{})
	}
	b.HitSet[id] = struct{}{}
}
