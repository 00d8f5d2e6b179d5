package entities

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
)

// NewExplosion 在 (cx, cy) 处创建爆炸特效
// 特效尺寸为爆炸半径 × SizeFactor，帧动画不循环，播完由 LifetimeSystem 清理
func NewExplosion(em *ecs.EntityManager, cfg *config.GameConfig, cx, cy, radius float64) ecs.EntityID {
	size := int(radius * cfg.Explosion.SizeFactor)
	half := float64(size) / 2

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: cx - half, Y: cy - half})
	ecs.AddComponent(em, id, &components.CollisionComponent{Width: size, Height: size})
	ecs.AddComponent(em, id, &components.ExplosionComponent{
		Radius:  radius,
		FrameMs: cfg.Explosion.FrameMs,
		Frames:  cfg.Explosion.Frames,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		MaxLifetime: float64(cfg.Explosion.FrameMs*int64(cfg.Explosion.Frames)) / 1000,
	})
	return id
}

// NewTileGrid 创建瓦片地图实体（每局一个）
func NewTileGrid(em *ecs.EntityManager, cfg *config.GameConfig) ecs.EntityID {
	obstacles := make(map[int]struct{}, len(cfg.World.ObstacleVariants))
	for _, v := range cfg.World.ObstacleVariants {
		obstacles[v] = struct{}{}
	}
	variants := cfg.World.TileVariants
	if variants < 1 {
		// 没有可用瓦片时退化为单一地板，不存在障碍物
		variants = 1
		obstacles = map[int]struct{}{}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TileGridComponent{
		Cells:     make(map[components.CellKey]int),
		Obstacles: obstacles,
		Variants:  variants,
	})
	return id
}
