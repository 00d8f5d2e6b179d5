package systems

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 同时推进爆炸特效的帧动画，动画播完或生命周期到期的实体被标记删除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
// 参数：
//   - deltaTime: 时间增量（秒）
func (s *LifetimeSystem) Update(deltaTime float64) {
	s.updateExplosions(deltaTime)

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// updateExplosions 按帧间隔推进爆炸动画（不循环）
func (s *LifetimeSystem) updateExplosions(deltaTime float64) {
	elapsed := int64(deltaTime * 1000)
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.entityManager) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, id)
		if explosion.FrameMs <= 0 {
			explosion.Frame = explosion.Frames
		} else {
			explosion.Elapsed += elapsed
			explosion.Frame = int(explosion.Elapsed / explosion.FrameMs)
		}
		if explosion.Finished() {
			s.entityManager.DestroyEntity(id)
		}
	}
}
