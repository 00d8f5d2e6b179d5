package components

import "github.com/decker502/zombieshot/pkg/types"

// WeaponState 单把武器的运行时状态
// 配置数值在创建时从 config.WeaponStats 拷贝
type WeaponState struct {
	Kind types.WeaponKind

	Damage          int
	FireDelayMs     int64
	ClipSize        int
	CurrentAmmo     int
	Reserve         int
	InfiniteReserve bool
	NoReserve       bool

	ShootingAngle float64 // 随机散布总角度（度）
	Pellets       int
	PelletSpacing float64
	Pierce        bool
	BlastRadius   float64

	ReloadMs      int64
	Reloading     bool
	ReloadStarted int64
	ReloadReadyAt int64 // 换弹完成的模拟时间，每个 tick 检查

	LastShotAt int64
	HasFired   bool // 是否射击过（首发不受射速限制）

	FireSound   string
	ReloadSound string
	HitSound    string
}

// ArsenalComponent 玩家持有的武器栏
type ArsenalComponent struct {
	Weapons []*WeaponState // 按 types.WeaponKind 顺序
	Current int            // 当前武器索引
}

// CurrentWeapon 返回当前武器
func (a *ArsenalComponent) CurrentWeapon() *WeaponState {
	if a.Current < 0 || a.Current >= len(a.Weapons) {
		return nil
	}
	return a.Weapons[a.Current]
}

// WeaponOf 返回指定类型的武器
func (a *ArsenalComponent) WeaponOf(kind types.WeaponKind) *WeaponState {
	for _, w := range a.Weapons {
		if w.Kind == kind {
			return w
		}
	}
	return nil
}
