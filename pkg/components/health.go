package components

// HealthComponent 存储实体的生命值信息
// 用于玩家和僵尸
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// Damage 扣除生命值，返回本次是否导致死亡（从存活变为 <=0）
// 已死亡的实体再次受到伤害返回 false，保证死亡只被判定一次
func (h *HealthComponent) Damage(amount int) bool {
	if h.CurrentHealth <= 0 {
		return false
	}
	h.CurrentHealth -= amount
	return h.CurrentHealth <= 0
}

// DamageClamped 扣除生命值，结果不低于 0，返回扣除后是否归零
func (h *HealthComponent) DamageClamped(amount int) bool {
	h.CurrentHealth -= amount
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	return h.CurrentHealth == 0
}

// Heal 恢复生命值，不超过上限，返回实际恢复量
func (h *HealthComponent) Heal(amount int) int {
	if amount <= 0 || h.CurrentHealth >= h.MaxHealth {
		return 0
	}
	before := h.CurrentHealth
	h.CurrentHealth += amount
	if h.CurrentHealth > h.MaxHealth {
		h.CurrentHealth = h.MaxHealth
	}
	return h.CurrentHealth - before
}
