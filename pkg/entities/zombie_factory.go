package entities

import (
	"fmt"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
)

// NewZombie 创建僵尸实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - kind: 僵尸类型
//   - x, y: 左上角世界坐标
//   - speedMultiplier: 难度速度系数
//   - now: 当前模拟时间（毫秒），爬行僵尸的跳跃冷却从此刻开始计算
//
// 返回:
//   - ecs.EntityID: 僵尸实体ID，失败时为 0
//   - error: 类型无效或缺少配置时返回错误
func NewZombie(em *ecs.EntityManager, cfg *config.GameConfig, kind types.ZombieKind, x, y, speedMultiplier float64, now int64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	stats, ok := cfg.Zombie(kind)
	if !ok {
		return 0, fmt.Errorf("missing zombie config: %s", kind)
	}
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{Width: stats.Width, Height: stats.Height})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	ecs.AddComponent(em, id, &components.FacingComponent{})
	ecs.AddComponent(em, id, &components.ZombieComponent{
		Kind:          kind,
		Damage:        stats.Damage,
		BaseSpeed:     stats.Speed,
		Speed:         stats.Speed * speedMultiplier,
		AttackRange:   stats.AttackRange,
		AttackDelayMs: stats.AttackDelayMs(),
		Score:         stats.Score,
		BlastRadius:   stats.BlastRadius,
	})

	if kind == types.ZombieReptile {
		ecs.AddComponent(em, id, &components.ReptileJumpComponent{
			State:      components.ReptileChasing,
			LastJumpAt: now,
			CooldownMs: stats.JumpCooldownMs,
			Range:      stats.JumpRange,
			SpeedMult:  stats.JumpSpeed,
			Trigger:    stats.JumpTrigger,
		})
	}
	return id, nil
}
