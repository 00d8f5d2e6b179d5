package systems

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
)

// ZombieBehaviorSystem 僵尸 AI
//
// 每个 tick 对每个僵尸：
//  1. 计算指向玩家中心的单位向量
//  2. 在攻击范围内且冷却结束时攻击（酸液僵尸吐酸，其他僵尸直接造成接触伤害）
//  3. 移动：爬行僵尸按跳跃状态机冲刺，其余僵尸追击并滑墙
type ZombieBehaviorSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	clock         *game.SimClock
	sound         game.SoundPlayer
	grid          *TileGridSystem
}

// NewZombieBehaviorSystem 创建僵尸行为系统
func NewZombieBehaviorSystem(em *ecs.EntityManager, cfg *config.GameConfig, clock *game.SimClock, sound game.SoundPlayer, grid *TileGridSystem) *ZombieBehaviorSystem {
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}
	return &ZombieBehaviorSystem{
		entityManager: em,
		config:        cfg,
		clock:         clock,
		sound:         sound,
		grid:          grid,
	}
}

// Update 更新所有僵尸
func (s *ZombieBehaviorSystem) Update(dt float64) {
	playerID, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}
	px, py, ok := entityCenter(s.entityManager, playerID)
	if !ok {
		return
	}
	scale := dt * float64(s.config.World.TicksPerSecond)
	now := s.clock.Now()

	zombies := ecs.GetEntitiesWith3[*components.ZombieComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	for _, id := range zombies {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)

		zx, zy := col.Center(pos)
		dx, dy, dist := normalize(px-zx, py-zy)

		if dist < zombie.AttackRange && canAttack(zombie, now) {
			s.attack(id, zombie, zx, zy, px, py, playerID, now)
		}

		if jump, ok := ecs.GetComponent[*components.ReptileJumpComponent](s.entityManager, id); ok {
			s.updateReptile(zombie, jump, pos, col, dx, dy, dist, now, scale)
		} else {
			pos.X, pos.Y = s.grid.TryMoveEntity(pos.X, pos.Y, dx*zombie.Speed*scale, dy*zombie.Speed*scale, col.Width, col.Height)
		}

		if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok {
			facing.DirX, facing.DirY = dx, dy
			facing.FacingLeft = dx < 0
		}
	}
}

// canAttack 攻击冷却是否结束（首次攻击不受限）
func canAttack(z *components.ZombieComponent, now int64) bool {
	return !z.HasAttacked || now-z.LastAttackAt >= z.AttackDelayMs
}

// attack 执行一次攻击并开始冷却
func (s *ZombieBehaviorSystem) attack(id ecs.EntityID, zombie *components.ZombieComponent, zx, zy, px, py float64, playerID ecs.EntityID, now int64) {
	if zombie.Kind.IsRanged() {
		entities.NewAcidBullet(s.entityManager, s.config, zombie.Damage, zx, zy, px, py)
	} else {
		DamagePlayer(s.entityManager, s.config, s.clock, s.sound, playerID, zombie.Damage)
	}
	zombie.LastAttackAt = now
	zombie.HasAttacked = true
}

// updateReptile 爬行僵尸状态机
//
// 追击状态下距玩家小于触发距离且冷却结束时，锁定方向开始跳跃；
// 跳跃中以 速度 × 倍率 沿锁定方向前进，受阻或达到跳跃距离后回到追击。
func (s *ZombieBehaviorSystem) updateReptile(zombie *components.ZombieComponent, jump *components.ReptileJumpComponent,
	pos *components.PositionComponent, col *components.CollisionComponent, dx, dy, dist float64, now int64, scale float64) {

	if jump.State == components.ReptileChasing && dist < jump.Trigger && now-jump.LastJumpAt >= jump.CooldownMs {
		jump.State = components.ReptileJumping
		jump.DirX, jump.DirY = dx, dy
		jump.Traveled = 0
		jump.LastJumpAt = now
	}

	if jump.State != components.ReptileJumping {
		pos.X, pos.Y = s.grid.TryMoveEntity(pos.X, pos.Y, dx*zombie.Speed*scale, dy*zombie.Speed*scale, col.Width, col.Height)
		return
	}

	step := zombie.Speed * jump.SpeedMult * scale
	mx, my := jump.DirX*step, jump.DirY*step
	if !s.grid.IsValidMoveForEntity(pos.X, pos.Y, mx, my, col.Width, col.Height) {
		jump.State = components.ReptileChasing
		return
	}
	pos.X += mx
	pos.Y += my
	jump.Traveled += step
	if jump.Traveled >= jump.Range {
		jump.State = components.ReptileChasing
	}
}

// RescaleSpeed 难度切换时按倍率比例调整存活僵尸速度
func (s *ZombieBehaviorSystem) RescaleSpeed(oldMultiplier, newMultiplier float64) {
	if oldMultiplier <= 0 || newMultiplier <= 0 {
		return
	}
	ratio := newMultiplier / oldMultiplier
	for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](s.entityManager) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		zombie.Speed *= ratio
	}
}

// LiveZombies 当前存活（未标记删除）的僵尸数量
func LiveZombies(em *ecs.EntityManager) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
		if !em.IsMarkedForDestroy(id) {
			n++
		}
	}
	return n
}
