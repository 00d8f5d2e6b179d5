package components

// ExplosionComponent 爆炸特效的帧动画状态（不循环）
type ExplosionComponent struct {
	Radius  float64
	FrameMs int64
	Frames  int
	Frame   int
	Elapsed int64
}

// Finished 动画是否已播放完
func (e *ExplosionComponent) Finished() bool {
	return e.Frame >= e.Frames
}
