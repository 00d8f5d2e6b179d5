package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/decker502/zombieshot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground   = color.RGBA{R: 20, G: 22, B: 18, A: 255}
	colorUnrevealed   = color.RGBA{R: 34, G: 38, B: 30, A: 255}
	colorObstacleEdge = color.RGBA{R: 15, G: 15, B: 15, A: 255}
	colorFlash        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorHealthBar    = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	colorHealthBack   = color.RGBA{R: 40, G: 0, B: 0, A: 255}
	colorAim          = color.RGBA{R: 230, G: 230, B: 200, A: 255}

	// tilePalette 按瓦片外观编号取色，最后两种为障碍物
	tilePalette = []color.RGBA{
		{R: 86, G: 98, B: 62, A: 255},
		{R: 92, G: 104, B: 66, A: 255},
		{R: 80, G: 92, B: 58, A: 255},
		{R: 98, G: 96, B: 70, A: 255},
		{R: 70, G: 60, B: 50, A: 255},
		{R: 58, G: 62, B: 66, A: 255},
	}

	zombieColors = map[types.ZombieKind]color.RGBA{
		types.ZombieNormal:  {R: 110, G: 150, B: 90, A: 255},
		types.ZombieReptile: {R: 150, G: 120, B: 60, A: 255},
		types.ZombieTank:    {R: 90, G: 90, B: 120, A: 255},
		types.ZombieAcidic:  {R: 140, G: 200, B: 40, A: 255},
	}

	// characterColors 按角色编号区分玩家外观
	characterColors = []color.RGBA{
		{R: 60, G: 120, B: 220, A: 255},
		{R: 220, G: 80, B: 60, A: 255},
		{R: 230, G: 190, B: 50, A: 255},
		{R: 160, G: 80, B: 200, A: 255},
	}
)

func tileColor(variant int) color.RGBA {
	return tilePalette[variant%len(tilePalette)]
}

// screenRect 实体碰撞盒的屏幕坐标，屏幕外的实体返回 false
func (gs *GameScene) screenRect(pos *components.PositionComponent, col *components.CollisionComponent) (x, y, w, h float32, ok bool) {
	ox, oy := gs.sim.Grid().Offset()
	sx, sy := utils.WorldToScreen(pos.X, pos.Y, ox, oy)
	world := gs.sim.Config().World
	if !utils.IsOnScreen(sx, sy, float64(col.Width), float64(col.Height), world.ScreenWidth, world.ScreenHeight) {
		return 0, 0, 0, 0, false
	}
	return float32(sx), float32(sy), float32(col.Width), float32(col.Height), true
}

// drawTiles 绘制屏幕范围内的格子，尚未生成的格子用底色填充
func (gs *GameScene) drawTiles(screen *ebiten.Image) {
	grid := gs.sim.Grid()
	ts := float64(grid.TileSize())
	ox, oy := grid.Offset()
	minX, minY, maxX, maxY := grid.VisibleCells()

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			sx, sy := utils.WorldToScreen(float64(cx)*ts, float64(cy)*ts, ox, oy)
			variant, ok := grid.CellVariant(cx, cy)
			if !ok {
				vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(ts), float32(ts), colorUnrevealed, false)
				continue
			}
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(ts), float32(ts), tileColor(variant), false)
			if grid.IsObstacle(cx, cy) {
				vector.StrokeRect(screen, float32(sx)+2, float32(sy)+2, float32(ts)-4, float32(ts)-4, 3, colorObstacleEdge, false)
			}
		}
	}
}

func (gs *GameScene) drawDrops(screen *ebiten.Image) {
	em := gs.sim.EntityManager()
	for _, id := range ecs.GetEntitiesWith3[*components.DropComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		drop, _ := ecs.GetComponent[*components.DropComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		if drop.Collected {
			continue
		}
		x, y, w, h, ok := gs.screenRect(pos, col)
		if !ok {
			continue
		}

		switch drop.Kind {
		case types.DropHealth:
			shade := uint8(255 - 30*drop.Variant)
			vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: shade, G: shade, B: shade, A: 255}, false)
			vector.DrawFilledRect(screen, x+w*0.4, y+h*0.15, w*0.2, h*0.7, colorHealthBar, false)
			vector.DrawFilledRect(screen, x+w*0.15, y+h*0.4, w*0.7, h*0.2, colorHealthBar, false)
		case types.DropAmmo:
			vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 90, G: 100, B: 40, A: 255}, false)
			vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{R: 200, G: 190, B: 90, A: 255}, false)
			gs.drawText(screen, weaponShortLabel(drop.Weapon), float64(x)+4, float64(y)+4, colorAim)
		}
	}
}

func (gs *GameScene) drawZombies(screen *ebiten.Image) {
	em := gs.sim.EntityManager()
	for _, id := range ecs.GetEntitiesWith3[*components.ZombieComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		x, y, w, h, ok := gs.screenRect(pos, col)
		if !ok {
			continue
		}

		body := zombieColors[zombie.Kind]
		if gs.sim.IsFlashing(id) {
			body = colorFlash
		}
		vector.DrawFilledRect(screen, x+w*0.15, y+h*0.1, w*0.7, h*0.85, body, false)

		// 眼睛朝向移动方向
		eyeX := x + w*0.65
		if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok && facing.FacingLeft {
			eyeX = x + w*0.35
		}
		vector.DrawFilledCircle(screen, eyeX, y+h*0.3, w*0.06, color.RGBA{R: 200, G: 20, B: 20, A: 255}, false)

		if jump, ok := ecs.GetComponent[*components.ReptileJumpComponent](em, id); ok && jump.State == components.ReptileJumping {
			vector.StrokeRect(screen, x+w*0.1, y+h*0.05, w*0.8, h*0.95, 3, colorAim, false)
		}

		if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && health.MaxHealth > 0 && health.CurrentHealth < health.MaxHealth {
			ratio := float32(max(0, health.CurrentHealth)) / float32(health.MaxHealth)
			vector.DrawFilledRect(screen, x+w*0.15, y, w*0.7, 5, colorHealthBack, false)
			vector.DrawFilledRect(screen, x+w*0.15, y, w*0.7*ratio, 5, colorHealthBar, false)
		}
	}
}

func (gs *GameScene) drawPlayer(screen *ebiten.Image) {
	em := gs.sim.EntityManager()
	id := gs.sim.Player()
	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	x, y, w, h, ok := gs.screenRect(pos, col)
	if !ok {
		return
	}

	body := characterColors[(max(1, player.CharacterID)-1)%len(characterColors)]
	if gs.sim.IsFlashing(id) {
		body = colorFlash
	}
	// 行走时身体随帧上下起伏
	var bob float32
	if player.Moving && player.WalkFrame%2 == 1 {
		bob = 3
	}
	vector.DrawFilledCircle(screen, x+w/2, y+h/2-bob, w*0.38, body, true)

	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok {
		rad := facing.Rotation * math.Pi / 180
		length := gs.sim.Config().Player.MuzzleOffset
		cx, cy := x+w/2, y+h/2-bob
		vector.StrokeLine(screen, cx, cy, cx+float32(math.Cos(rad)*length), cy+float32(math.Sin(rad)*length), 6, colorAim, true)
	}
}

func (gs *GameScene) drawBullets(screen *ebiten.Image) {
	em := gs.sim.EntityManager()
	for _, id := range ecs.GetEntitiesWith3[*components.BulletComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		bullet, _ := ecs.GetComponent[*components.BulletComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		x, y, w, h, ok := gs.screenRect(pos, col)
		if !ok {
			continue
		}
		cx, cy := x+w/2, y+h/2

		switch {
		case bullet.ZombieBullet:
			vector.DrawFilledCircle(screen, cx, cy, w/2, color.RGBA{R: 120, G: 230, B: 40, A: 255}, true)
		case bullet.BlastRadius > 0:
			vector.DrawFilledCircle(screen, cx, cy, w/6, color.RGBA{R: 240, G: 120, B: 30, A: 255}, true)
		default:
			rad := bullet.Rotation * math.Pi / 180
			dx, dy := float32(math.Cos(rad))*w/4, float32(math.Sin(rad))*h/4
			vector.StrokeLine(screen, cx-dx, cy-dy, cx+dx, cy+dy, 3, color.RGBA{R: 250, G: 220, B: 90, A: 255}, true)
		}
	}
}

// drawExplosions 爆炸随帧扩大并淡出
func (gs *GameScene) drawExplosions(screen *ebiten.Image) {
	em := gs.sim.EntityManager()
	for _, id := range ecs.GetEntitiesWith3[*components.ExplosionComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		if explosion.Finished() || explosion.Frames <= 0 {
			continue
		}
		x, y, w, h, ok := gs.screenRect(pos, col)
		if !ok {
			continue
		}
		progress := float32(explosion.Frame) / float32(explosion.Frames)
		alpha := uint8(255 * (1 - progress))
		r := w / 2 * (0.4 + 0.6*progress)
		vector.DrawFilledCircle(screen, x+w/2, y+h/2, r, color.NRGBA{R: 255, G: 150, B: 40, A: alpha}, true)
		vector.DrawFilledCircle(screen, x+w/2, y+h/2, r*0.5, color.NRGBA{R: 255, G: 230, B: 120, A: alpha}, true)
	}
}
