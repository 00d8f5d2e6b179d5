package types

// ZombieKind 定义僵尸的类型
// 数值顺序即按波次逐步解锁的顺序
type ZombieKind int

const (
	// ZombieNormal 普通僵尸：追击 + 近战
	ZombieNormal ZombieKind = iota
	// ZombieReptile 爬行僵尸：接近后跳跃冲刺
	ZombieReptile
	// ZombieTank 坦克僵尸：高血量、慢速、高伤害
	ZombieTank
	// ZombieAcidic 酸液僵尸：远程吐酸，死亡时爆炸
	ZombieAcidic

	// ZombieKindCount 僵尸种类数量
	ZombieKindCount int = iota
)

var zombieKindStringMap = map[ZombieKind]string{
	ZombieNormal:  "normal",
	ZombieReptile: "reptile",
	ZombieTank:    "tank",
	ZombieAcidic:  "acidic",
}

var stringToZombieKindMap map[string]ZombieKind

func init() {
	stringToZombieKindMap = make(map[string]ZombieKind, len(zombieKindStringMap))
	for k, s := range zombieKindStringMap {
		stringToZombieKindMap[s] = k
	}
	// 别名
	stringToZombieKindMap["basic"] = ZombieNormal
	stringToZombieKindMap["leaper"] = ZombieReptile
	stringToZombieKindMap["acid"] = ZombieAcidic
}

// String 返回僵尸类型的配置字符串
func (z ZombieKind) String() string {
	if s, ok := zombieKindStringMap[z]; ok {
		return s
	}
	return "unknown"
}

// Valid 判断是否为已定义的僵尸类型
func (z ZombieKind) Valid() bool {
	return z >= 0 && int(z) < ZombieKindCount
}

// ZombieKindFromString 将配置字符串转换为 ZombieKind
func ZombieKindFromString(s string) (ZombieKind, bool) {
	k, ok := stringToZombieKindMap[s]
	return k, ok
}

// IsRanged 是否为远程攻击僵尸（不造成接触伤害）
func (z ZombieKind) IsRanged() bool {
	return z == ZombieAcidic
}

// ExplodesOnDeath 死亡时是否触发范围爆炸
func (z ZombieKind) ExplodesOnDeath() bool {
	return z == ZombieAcidic
}
