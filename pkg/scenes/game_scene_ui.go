package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/zombieshot/pkg/simulation"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// HUD 面板（左上角）
	HUDPanelX      = 10
	HUDPanelY      = 10
	HUDPanelWidth  = 240
	HUDPanelHeight = 96
	HUDLineHeight  = 18

	// 武器栏（底部居中）
	WeaponSlotWidth   = 110
	WeaponSlotHeight  = 44
	WeaponSlotSpacing = 8
	WeaponBarMarginY  = 16

	// 排行榜在结束画面中显示的条数
	GameOverScoreRows = 5
)

var (
	colorPanel       = color.NRGBA{R: 0, G: 0, B: 0, A: 150}
	colorOverlay     = color.NRGBA{R: 0, G: 0, B: 0, A: 170}
	colorText        = color.RGBA{R: 235, G: 235, B: 225, A: 255}
	colorTextDim     = color.RGBA{R: 150, G: 150, B: 140, A: 255}
	colorHighlight   = color.RGBA{R: 250, G: 200, B: 60, A: 255}
	colorReloadBar   = color.RGBA{R: 90, G: 170, B: 250, A: 255}
	colorCooldownBar = color.RGBA{R: 250, G: 250, B: 250, A: 255}
)

var weaponLabels = map[types.WeaponKind]string{
	types.WeaponPistol:         "Pistol",
	types.WeaponRifle:          "Rifle",
	types.WeaponShotgun:        "Shotgun",
	types.WeaponSniper:         "Sniper",
	types.WeaponRocketLauncher: "Rocket",
}

func weaponLabel(kind types.WeaponKind) string {
	if label, ok := weaponLabels[kind]; ok {
		return label
	}
	return kind.String()
}

// weaponShortLabel 弹药包上显示的缩写
func weaponShortLabel(kind types.WeaponKind) string {
	label := weaponLabel(kind)
	if len(label) > 3 {
		return label[:3]
	}
	return label
}

// ammoText 弹匣 / 备弹，手枪备弹无限，火箭筒没有备弹
func ammoText(ammo, reserve int, infinite, noReserve bool) string {
	switch {
	case infinite:
		return fmt.Sprintf("%d / inf", ammo)
	case noReserve:
		return fmt.Sprintf("%d", ammo)
	default:
		return fmt.Sprintf("%d / %d", ammo, reserve)
	}
}

// drawText 在 (x, y) 绘制单行文本（左上角对齐）
func (gs *GameScene) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, gs.face, op)
}

// drawTextCentered 水平居中绘制文本
func (gs *GameScene) drawTextCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	width := text.Advance(s, gs.face)
	x := (float64(gs.sim.Config().World.ScreenWidth) - width) / 2
	gs.drawText(screen, s, x, y, clr)
}

// drawHUD 绘制生命值、波次、分数和武器栏
func (gs *GameScene) drawHUD(screen *ebiten.Image) {
	hud := gs.sim.HUD()

	vector.DrawFilledRect(screen, HUDPanelX, HUDPanelY, HUDPanelWidth, HUDPanelHeight, colorPanel, false)
	x, y := float64(HUDPanelX+8), float64(HUDPanelY+6)
	gs.drawText(screen, fmt.Sprintf("HP %d / %d", hud.Health, hud.MaxHealth), x, y, colorText)

	// 生命条
	barY := float32(y) + HUDLineHeight - 2
	vector.DrawFilledRect(screen, float32(x), barY, HUDPanelWidth-16, 4, colorHealthBack, false)
	if hud.MaxHealth > 0 {
		ratio := float32(hud.Health) / float32(hud.MaxHealth)
		vector.DrawFilledRect(screen, float32(x), barY, (HUDPanelWidth-16)*ratio, 4, colorHealthBar, false)
	}

	y += HUDLineHeight + 6
	gs.drawText(screen, fmt.Sprintf("Wave %d   Left %d", hud.Wave, hud.ZombiesRemaining), x, y, colorText)
	y += HUDLineHeight
	gs.drawText(screen, fmt.Sprintf("Kills %d   Score %d", hud.Kills, hud.Score), x, y, colorText)
	y += HUDLineHeight
	gs.drawText(screen, fmt.Sprintf("Best %d   %s", hud.BestScore, gs.sim.GameState().Difficulty), x, y, colorTextDim)

	gs.drawWeaponBar(screen, hud)

	if gs.statusTimeout > 0 {
		gs.drawTextCentered(screen, gs.status, float64(HUDPanelY+6), colorHighlight)
	}
}

// drawWeaponBar 底部武器栏，当前武器高亮并显示换弹和射击冷却进度
func (gs *GameScene) drawWeaponBar(screen *ebiten.Image, hud simulation.HUD) {
	world := gs.sim.Config().World
	kinds := types.AllWeaponKinds()
	total := len(kinds)*WeaponSlotWidth + (len(kinds)-1)*WeaponSlotSpacing
	startX := (world.ScreenWidth - total) / 2
	y := float32(world.ScreenHeight - WeaponBarMarginY - WeaponSlotHeight)

	current := gs.sim.CurrentWeapon()
	for i, kind := range kinds {
		x := float32(startX + i*(WeaponSlotWidth+WeaponSlotSpacing))
		vector.DrawFilledRect(screen, x, y, WeaponSlotWidth, WeaponSlotHeight, colorPanel, false)

		label := fmt.Sprintf("%d %s", i+1, weaponLabel(kind))
		if kind != hud.Weapon || current == nil {
			gs.drawText(screen, label, float64(x)+6, float64(y)+6, colorTextDim)
			continue
		}

		vector.StrokeRect(screen, x, y, WeaponSlotWidth, WeaponSlotHeight, 2, colorHighlight, false)
		gs.drawText(screen, label, float64(x)+6, float64(y)+6, colorHighlight)
		gs.drawText(screen, ammoText(hud.Ammo, hud.Reserve, hud.InfiniteReserve, current.NoReserve), float64(x)+6, float64(y)+22, colorText)

		if hud.Reloading {
			vector.DrawFilledRect(screen, x, y+WeaponSlotHeight-4, WeaponSlotWidth*float32(hud.ReloadProgress), 4, colorReloadBar, false)
		} else if hud.CooldownProgress < 1 {
			vector.DrawFilledRect(screen, x, y+WeaponSlotHeight-2, WeaponSlotWidth*float32(hud.CooldownProgress), 2, colorCooldownBar, false)
		}
	}
}

func (gs *GameScene) drawOverlay(screen *ebiten.Image) {
	world := gs.sim.Config().World
	vector.DrawFilledRect(screen, 0, 0, float32(world.ScreenWidth), float32(world.ScreenHeight), colorOverlay, false)
}

func (gs *GameScene) drawPaused(screen *ebiten.Image) {
	gs.drawOverlay(screen)
	y := float64(gs.sim.Config().World.ScreenHeight)/2 - 60
	gs.drawTextCentered(screen, "PAUSED", y, colorHighlight)
	lines := []string{
		"P / Esc  resume",
		"WASD  move    Mouse  aim and fire    R  reload    1-5  weapons",
		"F5  save    F9  load    F2  difficulty    M  music    N  next track",
	}
	for i, line := range lines {
		gs.drawTextCentered(screen, line, y+30+float64(i)*HUDLineHeight, colorText)
	}
}

// drawGameOver 结束画面：本局成绩、名次和排行榜
func (gs *GameScene) drawGameOver(screen *ebiten.Image) {
	gs.drawOverlay(screen)
	hud := gs.sim.HUD()
	y := float64(gs.sim.Config().World.ScreenHeight)/2 - 120

	gs.drawTextCentered(screen, "GAME OVER", y, colorHealthBar)
	y += HUDLineHeight * 2
	gs.drawTextCentered(screen, fmt.Sprintf("Wave %d   Kills %d   Score %d", hud.Wave, hud.Kills, hud.Score), y, colorText)
	y += HUDLineHeight
	if hud.Rank > 0 {
		gs.drawTextCentered(screen, fmt.Sprintf("New high score! Rank #%d", hud.Rank), y, colorHighlight)
	}

	y += HUDLineHeight * 2
	gs.drawTextCentered(screen, "HIGH SCORES", y, colorTextDim)
	for i, entry := range gs.sim.HighScores().Top() {
		if i >= GameOverScoreRows {
			break
		}
		y += HUDLineHeight
		clr := color.Color(colorText)
		if entry.SessionID == gs.sim.GameState().SessionID {
			clr = colorHighlight
		}
		gs.drawTextCentered(screen, fmt.Sprintf("%d. %6d  wave %2d  %s", i+1, entry.Score, entry.Wave, entry.Difficulty), y, clr)
	}

	y += HUDLineHeight * 2
	gs.drawTextCentered(screen, "Press Enter to play again", y, colorText)
}

// drawDebugInfo 右上角显示帧率和实体数量
func (gs *GameScene) drawDebugInfo(screen *ebiten.Image) {
	info := fmt.Sprintf("TPS %.0f  FPS %.0f  entities %d  t=%dms",
		ebiten.ActualTPS(), ebiten.ActualFPS(), len(gs.sim.EntityManager().GetEntitiesWith()), gs.sim.Clock().Now())
	x := float64(gs.sim.Config().World.ScreenWidth) - text.Advance(info, gs.face) - 10
	gs.drawText(screen, info, x, 10, colorTextDim)
}
