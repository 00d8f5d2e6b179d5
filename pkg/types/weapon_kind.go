// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// WeaponKind 定义武器的类型
// 数值顺序即玩家武器栏顺序（按键 1-5）
type WeaponKind int

const (
	// WeaponPistol 手枪（弹药无限）
	WeaponPistol WeaponKind = iota
	// WeaponRifle 步枪
	WeaponRifle
	// WeaponShotgun 霰弹枪（一次多发）
	WeaponShotgun
	// WeaponSniper 狙击枪（穿透）
	WeaponSniper
	// WeaponRocketLauncher 火箭筒（范围伤害，无备弹）
	WeaponRocketLauncher

	// WeaponKindCount 武器种类数量
	WeaponKindCount int = iota
)

var weaponKindStringMap = map[WeaponKind]string{
	WeaponPistol:         "pistol",
	WeaponRifle:          "rifle",
	WeaponShotgun:        "shotgun",
	WeaponSniper:         "sniper",
	WeaponRocketLauncher: "rocket_launcher",
}

var stringToWeaponKindMap map[string]WeaponKind

func init() {
	stringToWeaponKindMap = make(map[string]WeaponKind, len(weaponKindStringMap))
	for k, s := range weaponKindStringMap {
		stringToWeaponKindMap[s] = k
	}
	stringToWeaponKindMap["rocket"] = WeaponRocketLauncher
}

// String 返回武器类型的配置字符串
func (w WeaponKind) String() string {
	if s, ok := weaponKindStringMap[w]; ok {
		return s
	}
	return "unknown"
}

// Valid 判断是否为已定义的武器类型
func (w WeaponKind) Valid() bool {
	return w >= 0 && int(w) < WeaponKindCount
}

// WeaponKindFromString 将配置字符串转换为 WeaponKind
// 返回：
//   - WeaponKind: 对应类型
//   - bool: 是否识别成功
func WeaponKindFromString(s string) (WeaponKind, bool) {
	k, ok := stringToWeaponKindMap[s]
	return k, ok
}

// AllWeaponKinds 按武器栏顺序返回所有武器类型
func AllWeaponKinds() []WeaponKind {
	return []WeaponKind{WeaponPistol, WeaponRifle, WeaponShotgun, WeaponSniper, WeaponRocketLauncher}
}
