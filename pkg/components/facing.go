package components

// FacingComponent 朝向信息
// 僵尸用 DirX/DirY 决定渲染翻转，玩家用 Rotation 表示瞄准角度
type FacingComponent struct {
	Rotation   float64 // 角度（度），0 指向 +X，顺时针为正（屏幕坐标）
	DirX       float64 // 最近一次移动方向（单位向量）
	DirY       float64
	FacingLeft bool
}
