package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
)

// TileGridSystem 管理无限瓦片地图
//
// 职责：
//   - 格子首次被访问时按权重随机分配外观，之后不再改变
//   - 提供玩家（镜头相对）和任意实体（世界坐标）的移动合法性查询
//   - 维护镜头偏移，并按配置淘汰远处格子
//
// 碰撞点位于实体中心下方 1/4 高度处，近似脚的位置。
type TileGridSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	gridEntity    ecs.EntityID
	rng           *rand.Rand
	ticks         int
}

// NewTileGridSystem 创建瓦片地图系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - gridEntity: 持有 TileGridComponent 的实体
//   - rng: 随机数源（测试中注入固定种子）
func NewTileGridSystem(em *ecs.EntityManager, cfg *config.GameConfig, gridEntity ecs.EntityID, rng *rand.Rand) *TileGridSystem {
	return &TileGridSystem{
		entityManager: em,
		config:        cfg,
		gridEntity:    gridEntity,
		rng:           rng,
	}
}

// GridEntity 返回地图实体ID
func (s *TileGridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

func (s *TileGridSystem) grid() *components.TileGridComponent {
	grid, ok := ecs.GetComponent[*components.TileGridComponent](s.entityManager, s.gridEntity)
	if !ok {
		return nil
	}
	return grid
}

// TileSize 瓦片边长
func (s *TileGridSystem) TileSize() int {
	return s.config.World.TileSize
}

// CellOf 返回世界坐标所在的格子
func (s *TileGridSystem) CellOf(x, y float64) (int, int) {
	size := float64(s.config.World.TileSize)
	return int(math.Floor(x / size)), int(math.Floor(y / size))
}

// TileAt 返回格子外观，未访问过的格子在此时生成
func (s *TileGridSystem) TileAt(cellX, cellY int) int {
	grid := s.grid()
	if grid == nil {
		return 0
	}
	key := components.CellKey{X: cellX, Y: cellY}
	if variant, ok := grid.Cells[key]; ok {
		return variant
	}
	variant := 0
	if s.rng.Float64() >= s.config.World.FloorChance {
		variant = s.rng.Intn(grid.Variants)
	}
	grid.Cells[key] = variant
	return variant
}

// CellVariant 只读查询格子外观，不生成新格子（供渲染使用）
func (s *TileGridSystem) CellVariant(cellX, cellY int) (int, bool) {
	grid := s.grid()
	if grid == nil {
		return 0, false
	}
	variant, ok := grid.Cells[components.CellKey{X: cellX, Y: cellY}]
	return variant, ok
}

// IsObstacle 格子是否为障碍物，未访问过的格子视为可通行
func (s *TileGridSystem) IsObstacle(cellX, cellY int) bool {
	grid := s.grid()
	if grid == nil {
		return false
	}
	variant, ok := grid.Cells[components.CellKey{X: cellX, Y: cellY}]
	if !ok {
		return false
	}
	_, obstacle := grid.Obstacles[variant]
	return obstacle
}

// Offset 返回镜头偏移（屏幕左上角对应的世界坐标）
func (s *TileGridSystem) Offset() (float64, float64) {
	grid := s.grid()
	if grid == nil {
		return 0, 0
	}
	return grid.OffsetX, grid.OffsetY
}

// CenterOn 移动镜头，使 (cx, cy) 位于屏幕中心
func (s *TileGridSystem) CenterOn(cx, cy float64) {
	grid := s.grid()
	if grid == nil {
		return
	}
	grid.OffsetX = cx - float64(s.config.World.ScreenWidth)/2
	grid.OffsetY = cy - float64(s.config.World.ScreenHeight)/2
}

// walkable 世界坐标点是否可通行
func (s *TileGridSystem) walkable(x, y float64) bool {
	return !s.IsObstacle(s.CellOf(x, y))
}

// IsValidMove 玩家以镜头偏移移动 (dx, dy) 后是否可通行
// 玩家始终位于屏幕中心，碰撞点为中心下方 actorHeight/4
func (s *TileGridSystem) IsValidMove(dx, dy float64, actorHeight int) bool {
	ox, oy := s.Offset()
	x := ox + float64(s.config.World.ScreenWidth)/2 + dx
	y := oy + float64(s.config.World.ScreenHeight)/2 + float64(actorHeight)/4 + dy
	return s.walkable(x, y)
}

// IsValidMoveForEntity 世界坐标实体移动 (dx, dy) 后是否可通行
func (s *TileGridSystem) IsValidMoveForEntity(x, y, dx, dy float64, width, height int) bool {
	fx := x + float64(width)/2 + dx
	fy := y + float64(height)/2 + float64(height)/4 + dy
	return s.walkable(fx, fy)
}

// IsValidSpawnPosition 实体放在 (x, y) 时碰撞点是否落在障碍物之外
// 落点格子会在此时生成，避免之后被揭示为障碍物
func (s *TileGridSystem) IsValidSpawnPosition(x, y float64, width, height int) bool {
	grid := s.grid()
	if grid == nil {
		return true
	}
	cx, cy := s.CellOf(x+float64(width)/2, y+float64(height)/2+float64(height)/4)
	_, obstacle := grid.Obstacles[s.TileAt(cx, cy)]
	return !obstacle
}

// TryMoveEntity 带滑墙的实体移动
// 斜向移动受阻时依次尝试只沿 X、只沿 Y 移动
//
// 返回:
//   - nx, ny: 移动后的位置（完全受阻时为原位置）
func (s *TileGridSystem) TryMoveEntity(x, y, dx, dy float64, width, height int) (float64, float64) {
	switch {
	case s.IsValidMoveForEntity(x, y, dx, dy, width, height):
		return x + dx, y + dy
	case dx != 0 && s.IsValidMoveForEntity(x, y, dx, 0, width, height):
		return x + dx, y
	case dy != 0 && s.IsValidMoveForEntity(x, y, 0, dy, width, height):
		return x, y + dy
	default:
		return x, y
	}
}

// TryMovePlayer 带滑墙的玩家移动
//
// 返回:
//   - 实际可执行的位移，完全受阻时为 (0, 0)
func (s *TileGridSystem) TryMovePlayer(dx, dy float64, actorHeight int) (float64, float64) {
	switch {
	case s.IsValidMove(dx, dy, actorHeight):
		return dx, dy
	case dx != 0 && s.IsValidMove(dx, 0, actorHeight):
		return dx, 0
	case dy != 0 && s.IsValidMove(0, dy, actorHeight):
		return 0, dy
	default:
		return 0, 0
	}
}

// VisibleCells 返回屏幕覆盖的格子范围（含一格边距）
func (s *TileGridSystem) VisibleCells() (minX, minY, maxX, maxY int) {
	ox, oy := s.Offset()
	minX, minY = s.CellOf(ox, oy)
	maxX, maxY = s.CellOf(ox+float64(s.config.World.ScreenWidth), oy+float64(s.config.World.ScreenHeight))
	return minX - 1, minY - 1, maxX + 1, maxY + 1
}

// RevealVisible 生成屏幕内所有格子
func (s *TileGridSystem) RevealVisible() {
	minX, minY, maxX, maxY := s.VisibleCells()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			s.TileAt(x, y)
		}
	}
}

// Update 生成可见格子，并按间隔淘汰远处格子
func (s *TileGridSystem) Update(dt float64) {
	s.RevealVisible()

	s.ticks++
	interval := s.config.World.EvictIntervalTicks
	if s.config.World.EvictRadiusCells > 0 && interval > 0 && s.ticks%interval == 0 {
		if n := s.Evict(); n > 0 {
			log.Printf("[TileGridSystem] Evicted %d distant cells", n)
		}
	}
}

// Evict 遗忘距屏幕中心超过 EvictRadiusCells 的格子，返回淘汰数量
func (s *TileGridSystem) Evict() int {
	grid := s.grid()
	radius := s.config.World.EvictRadiusCells
	if grid == nil || radius <= 0 {
		return 0
	}
	ox, oy := s.Offset()
	centerX, centerY := s.CellOf(ox+float64(s.config.World.ScreenWidth)/2, oy+float64(s.config.World.ScreenHeight)/2)

	removed := 0
	for key := range grid.Cells {
		if abs(key.X-centerX) > radius || abs(key.Y-centerY) > radius {
			delete(grid.Cells, key)
			removed++
		}
	}
	return removed
}

// FindValidPosition 以 (cx, cy) 为中心按格螺旋搜索可放置实体的位置
//
// 返回:
//   - x, y: 实体左上角位置，碰撞盒中心对齐找到的格子偏移
//   - ok: 搜索半径内没有合法位置时为 false，此时返回以 (cx, cy) 为中心的位置
func (s *TileGridSystem) FindValidPosition(cx, cy float64, width, height int) (float64, float64, bool) {
	halfW, halfH := float64(width)/2, float64(height)/2
	size := float64(s.config.World.TileSize)
	radius := s.config.World.RecenterRadiusCells

	for r := 0; r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				// 只检查当前环
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				x := cx + float64(dx)*size - halfW
				y := cy + float64(dy)*size - halfH
				if s.IsValidSpawnPosition(x, y, width, height) {
					return x, y, true
				}
			}
		}
	}
	log.Printf("[TileGridSystem] Warning: no valid position within %d cells of (%.0f, %.0f)", radius, cx, cy)
	return cx - halfW, cy - halfH, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
