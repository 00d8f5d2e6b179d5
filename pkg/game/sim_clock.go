package game

// SimClock 可暂停的模拟时钟（毫秒）
//
// 所有冷却、换弹、闪烁等时间戳都基于此时钟。
// 时钟只在 tick 中推进，暂停期间不流逝。
type SimClock struct {
	nowMs  float64
	paused bool
}

// NewSimClock 创建从 0 开始的模拟时钟
func NewSimClock() *SimClock {
	return &SimClock{}
}

// Now 返回当前模拟时间（毫秒）
func (c *SimClock) Now() int64 {
	return int64(c.nowMs)
}

// Advance 推进时钟，暂停时无效
// 参数：
//   - dt: 时间增量（秒）
func (c *SimClock) Advance(dt float64) {
	if c.paused || dt <= 0 {
		return
	}
	c.nowMs += dt * 1000
}

// SetPaused 设置暂停状态
func (c *SimClock) SetPaused(paused bool) {
	c.paused = paused
}

// Paused 是否暂停
func (c *SimClock) Paused() bool {
	return c.paused
}

// Restore 从存档恢复时钟读数
func (c *SimClock) Restore(nowMs int64) {
	c.nowMs = float64(nowMs)
}
