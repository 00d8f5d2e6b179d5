package components

import "github.com/decker502/zombieshot/pkg/types"

// DropComponent 掉落物
type DropComponent struct {
	Kind      types.DropKind
	Collected bool

	HealAmount int // 血包
	Variant    int // 血包外观

	AmmoAmount int              // 弹药包
	Weapon     types.WeaponKind // 弹药对应的武器
}
