package components

// CollisionComponent 定义实体的尺寸
// 同时作为渲染尺寸和 AABB 碰撞盒（以 PositionComponent 为左上角）
type CollisionComponent struct {
	Width  int // 宽度（像素）
	Height int // 高度（像素）
}

// Center 返回给定位置下碰撞盒的中心点
func (c *CollisionComponent) Center(pos *PositionComponent) (float64, float64) {
	return pos.X + float64(c.Width)/2, pos.Y + float64(c.Height)/2
}
