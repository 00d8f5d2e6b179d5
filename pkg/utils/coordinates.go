// Package utils 提供场景层使用的坐标转换和输入工具
//
// 世界坐标：地图上的绝对位置，实体的 PositionComponent 即为世界坐标（左上角）。
// 屏幕坐标：相对于窗口左上角，等于世界坐标减去镜头偏移。
package utils

// WorldToScreen 世界坐标转换为屏幕坐标
//
// 参数：
//   - worldX, worldY: 世界坐标
//   - offsetX, offsetY: 镜头偏移（屏幕左上角对应的世界坐标）
func WorldToScreen(worldX, worldY, offsetX, offsetY float64) (screenX, screenY float64) {
	return worldX - offsetX, worldY - offsetY
}

// ScreenToWorld 屏幕坐标转换为世界坐标
func ScreenToWorld(screenX, screenY, offsetX, offsetY float64) (worldX, worldY float64) {
	return screenX + offsetX, screenY + offsetY
}

// IsOnScreen 屏幕坐标下的矩形是否与屏幕相交
// 完全在屏幕外的实体不需要绘制
func IsOnScreen(x, y, w, h float64, screenW, screenH int) bool {
	return x+w > 0 && y+h > 0 && x < float64(screenW) && y < float64(screenH)
}
