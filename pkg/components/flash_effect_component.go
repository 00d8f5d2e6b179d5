package components

// FlashEffectComponent 闪烁效果组件
// 用于实体受击时的白色闪烁反馈效果
//
// 闪烁状态由开始时间和持续时间推导，时间均取自可暂停的模拟时钟（毫秒）
type FlashEffectComponent struct {
	// StartedAt 开始闪烁的模拟时间
	StartedAt int64

	// Duration 闪烁持续时间
	Duration int64
}

// IsFlashing 在给定时间点是否仍处于闪烁窗口内
func (f *FlashEffectComponent) IsFlashing(now int64) bool {
	return now-f.StartedAt <= f.Duration
}
