package scenes

import (
	"github.com/decker502/zombieshot/pkg/simulation"
	"github.com/decker502/zombieshot/pkg/systems"
	"github.com/decker502/zombieshot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// weaponKeys 数字键 1~5 对应武器栏
var weaponKeys = []ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
}

// pollInput 读取本 tick 的键盘和鼠标状态
// 瞄准角度由玩家中心（屏幕坐标）指向指针位置
func (gs *GameScene) pollInput() simulation.InputState {
	input := simulation.InputState{
		Move: systems.MoveIntent{
			Up:    utils.AnyKeyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
			Down:  utils.AnyKeyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
			Left:  utils.AnyKeyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
			Right: utils.AnyKeyPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		},
		Fire:   utils.IsPointerPressed() || ebiten.IsKeyPressed(ebiten.KeySpace),
		Reload: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Pause:  inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	for i, key := range weaponKeys {
		if inpututil.IsKeyJustPressed(key) {
			input.SelectWeapon = i + 1
		}
	}

	px, py := gs.sim.PlayerCenter()
	ox, oy := gs.sim.Grid().Offset()
	sx, sy := utils.WorldToScreen(px, py, ox, oy)
	mx, my := utils.GetPointerPosition()
	input.AimDeg = simulation.AimAngle(sx, sy, float64(mx), float64(my))
	return input
}
