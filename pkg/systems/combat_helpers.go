package systems

import (
	"math"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
)

// findPlayer 返回玩家实体（每局只有一个）
func findPlayer(em *ecs.EntityManager) (ecs.EntityID, bool) {
	players := ecs.GetEntitiesWith1[*components.PlayerComponent](em)
	if len(players) == 0 {
		return 0, false
	}
	return players[0], true
}

// entityCenter 返回实体碰撞盒中心
func entityCenter(em *ecs.EntityManager, id ecs.EntityID) (float64, float64, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return 0, 0, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return pos.X, pos.Y, true
	}
	cx, cy := col.Center(pos)
	return cx, cy, true
}

// checkAABBCollision 检查两个碰撞盒是否重叠（位置为左上角，边缘接触不算重叠）
func checkAABBCollision(
	pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {

	return pos1.X < pos2.X+float64(col2.Width) &&
		pos2.X < pos1.X+float64(col1.Width) &&
		pos1.Y < pos2.Y+float64(col2.Height) &&
		pos2.Y < pos1.Y+float64(col1.Height)
}

// overlaps 检查两个实体是否重叠
func overlaps(em *ecs.EntityManager, a, b ecs.EntityID) bool {
	posA, ok1 := ecs.GetComponent[*components.PositionComponent](em, a)
	colA, ok2 := ecs.GetComponent[*components.CollisionComponent](em, a)
	posB, ok3 := ecs.GetComponent[*components.PositionComponent](em, b)
	colB, ok4 := ecs.GetComponent[*components.CollisionComponent](em, b)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return checkAABBCollision(posA, colA, posB, colB)
}

// startFlash 开始受击闪烁（重复受击会重新计时）
func startFlash(em *ecs.EntityManager, id ecs.EntityID, now, duration int64) {
	ecs.AddComponent(em, id, &components.FlashEffectComponent{
		StartedAt: now,
		Duration:  duration,
	})
}

// normalize 归一化向量，零向量返回 (0, 0, 0)
func normalize(dx, dy float64) (float64, float64, float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0, 0
	}
	return dx / length, dy / length, length
}
