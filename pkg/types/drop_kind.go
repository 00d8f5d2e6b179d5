package types

// DropKind 定义掉落物类型
type DropKind int

const (
	// DropHealth 血包
	DropHealth DropKind = iota
	// DropAmmo 弹药
	DropAmmo
)

// String 返回掉落物类型的字符串表示
func (d DropKind) String() string {
	switch d {
	case DropHealth:
		return "health"
	case DropAmmo:
		return "ammo"
	default:
		return "unknown"
	}
}

// DropKindFromString 解析掉落物类型
func DropKindFromString(s string) (DropKind, bool) {
	switch s {
	case "health":
		return DropHealth, true
	case "ammo":
		return DropAmmo, true
	default:
		return DropHealth, false
	}
}
