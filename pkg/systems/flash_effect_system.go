package systems

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/game"
)

// FlashEffectSystem 闪烁效果系统
// 管理实体的受击闪烁效果生命周期，窗口结束后移除组件
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
	clock         *game.SimClock
}

// NewFlashEffectSystem 创建闪烁效果系统
func NewFlashEffectSystem(em *ecs.EntityManager, clock *game.SimClock) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
		clock:         clock,
	}
}

// Update 移除已结束的闪烁效果
// 参数：
//   - dt: 时间增量（秒），闪烁时间取自模拟时钟
func (s *FlashEffectSystem) Update(dt float64) {
	now := s.clock.Now()
	for _, entity := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager) {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok {
			continue
		}
		if !flashComp.IsFlashing(now) {
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
		}
	}
}

// IsFlashing 实体当前是否处于闪烁窗口内（供渲染使用）
func (s *FlashEffectSystem) IsFlashing(id ecs.EntityID) bool {
	flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id)
	return ok && flashComp.IsFlashing(s.clock.Now())
}
