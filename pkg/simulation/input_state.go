package simulation

import (
	"math"

	"github.com/decker502/zombieshot/pkg/systems"
)

// InputState 一个 tick 的输入快照
//
// 移动、瞄准、开火是持续状态，每个 tick 轮询；
// Reload、SelectWeapon、Pause 是边沿触发的动作，只在按下的那个 tick 为真。
type InputState struct {
	Move   systems.MoveIntent
	AimDeg float64 // 瞄准角度（度），0 指向 +X，顺时针为正
	Fire   bool    // 开火键按住

	Reload       bool
	SelectWeapon int // 1-5 选择武器，0 表示无操作
	Pause        bool
}

// AimAngle 计算从 (fromX, fromY) 指向 (toX, toY) 的角度（度）
func AimAngle(fromX, fromY, toX, toY float64) float64 {
	return math.Atan2(toY-fromY, toX-fromX) * 180 / math.Pi
}
