package systems

import (
	"math"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/game"
)

// MoveIntent 本 tick 的移动意图
type MoveIntent struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// PlayerMovementSystem 玩家移动与朝向
// 玩家在世界坐标中移动，镜头跟随玩家中心
type PlayerMovementSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	clock         *game.SimClock
	grid          *TileGridSystem
}

// NewPlayerMovementSystem 创建玩家移动系统
func NewPlayerMovementSystem(em *ecs.EntityManager, cfg *config.GameConfig, clock *game.SimClock, grid *TileGridSystem) *PlayerMovementSystem {
	return &PlayerMovementSystem{
		entityManager: em,
		config:        cfg,
		clock:         clock,
		grid:          grid,
	}
}

// Update 按移动意图移动玩家，斜向速度归一化，受阻时滑墙
//
// 参数:
//   - dt: 时间增量（秒），速度按 "像素/tick" 换算
//   - intent: 移动意图
//   - aimDeg: 瞄准角度（度）
func (s *PlayerMovementSystem) Update(dt float64, intent MoveIntent, aimDeg float64) {
	playerID, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, playerID)
	col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, playerID)
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, playerID)
	if pos == nil || col == nil || player == nil {
		return
	}

	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, playerID); ok {
		facing.Rotation = aimDeg
		facing.FacingLeft = math.Cos(aimDeg*math.Pi/180) < 0
	}

	h, v := 0.0, 0.0
	if intent.Up {
		v--
	}
	if intent.Down {
		v++
	}
	if intent.Left {
		h--
	}
	if intent.Right {
		h++
	}
	h, v, length := normalize(h, v)
	moving := length > 0
	s.updateWalkAnimation(player, moving)

	if moving {
		step := s.config.Player.Speed * dt * float64(s.config.World.TicksPerSecond)
		dx, dy := s.grid.TryMovePlayer(h*step, v*step, col.Height)
		pos.X += dx
		pos.Y += dy
	}
	s.grid.CenterOn(col.Center(pos))
}

// updateWalkAnimation 移动时按固定间隔切换行走帧，静止时回到第 0 帧
func (s *PlayerMovementSystem) updateWalkAnimation(player *components.PlayerComponent, moving bool) {
	player.Moving = moving
	if !moving {
		player.WalkFrame = 0
		return
	}
	now := s.clock.Now()
	frames := s.config.Player.WalkFrames
	if frames > 0 && now-player.LastFrameAt >= s.config.Player.WalkFrameMs {
		player.WalkFrame = (player.WalkFrame + 1) % frames
		player.LastFrameAt = now
	}
}
