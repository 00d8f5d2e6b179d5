package systems

import (
	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
)

// ProjectileSystem 子弹飞行与命中结算
//
// 职责：
//   - 推进子弹，移除飞出屏幕外过远的子弹
//   - 僵尸子弹只与玩家碰撞
//   - 玩家子弹与僵尸碰撞：火箭弹范围伤害，其他武器单体伤害，狙击弹穿透
//   - 结算击杀：计分、掉落、酸液僵尸死亡爆炸（链式）
//
// 实体删除是延迟的，本 tick 内已标记删除的僵尸不再参与碰撞和范围伤害。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	gameState     *game.GameState
	clock         *game.SimClock
	sound         game.SoundPlayer
	grid          *TileGridSystem
	loot          *LootSystem
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(em *ecs.EntityManager, cfg *config.GameConfig, gs *game.GameState, clock *game.SimClock,
	sound game.SoundPlayer, grid *TileGridSystem, loot *LootSystem) *ProjectileSystem {
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}
	return &ProjectileSystem{
		entityManager: em,
		config:        cfg,
		gameState:     gs,
		clock:         clock,
		sound:         sound,
		grid:          grid,
		loot:          loot,
	}
}

// Update 推进所有子弹并结算命中
func (s *ProjectileSystem) Update(dt float64) {
	playerID, hasPlayer := findPlayer(s.entityManager)
	scale := dt * float64(s.config.World.TicksPerSecond)
	ox, oy := s.grid.Offset()
	w := float64(s.config.World.ScreenWidth)
	h := float64(s.config.World.ScreenHeight)

	bullets := ecs.GetEntitiesWith3[*components.BulletComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	zombies := ecs.GetEntitiesWith3[*components.ZombieComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)

	for _, id := range bullets {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		pos.X += bullet.DirX * bullet.Speed * scale
		pos.Y += bullet.DirY * bullet.Speed * scale

		// 屏幕外一个屏幕尺寸以上视为出界
		relX, relY := pos.X-ox, pos.Y-oy
		if relX < -w || relX > 2*w || relY < -h || relY > 2*h {
			s.entityManager.DestroyEntity(id)
			continue
		}

		if bullet.ZombieBullet {
			if hasPlayer && overlaps(s.entityManager, id, playerID) {
				s.damagePlayer(playerID, bullet.Damage)
				s.entityManager.DestroyEntity(id)
			}
			continue
		}

		s.resolvePlayerBullet(id, bullet, zombies)
	}
}

// resolvePlayerBullet 玩家子弹与僵尸的碰撞
func (s *ProjectileSystem) resolvePlayerBullet(id ecs.EntityID, bullet *components.BulletComponent, zombies []ecs.EntityID) {
	for _, zombieID := range zombies {
		if s.entityManager.IsMarkedForDestroy(zombieID) || bullet.HasHit(zombieID) {
			continue
		}
		if !overlaps(s.entityManager, id, zombieID) {
			continue
		}

		if bullet.BlastRadius > 0 {
			cx, cy, _ := entityCenter(s.entityManager, zombieID)
			if stats, ok := s.config.Weapon(bullet.Weapon); ok {
				s.sound.PlaySound(stats.HitSound)
			}
			s.ApplyBlastDamage(cx, cy, bullet.BlastRadius, bullet.Damage)
			entities.NewExplosion(s.entityManager, s.config, cx, cy, bullet.BlastRadius)
		} else {
			s.DamageZombie(zombieID, bullet.Damage)
			bullet.MarkHit(zombieID)
		}

		if !bullet.Pierce {
			s.entityManager.DestroyEntity(id)
			return
		}
	}
}

// damagePlayer 玩家受到伤害并闪烁，生命值归零的处理由 Simulation 负责
func (s *ProjectileSystem) damagePlayer(playerID ecs.EntityID, damage int) {
	DamagePlayer(s.entityManager, s.config, s.clock, s.sound, playerID, damage)
}

// DamagePlayer 对玩家造成伤害，生命值最低为 0
func DamagePlayer(em *ecs.EntityManager, cfg *config.GameConfig, clock *game.SimClock, sound game.SoundPlayer, playerID ecs.EntityID, damage int) {
	health, ok := ecs.GetComponent[*components.HealthComponent](em, playerID)
	if !ok {
		return
	}
	health.DamageClamped(damage)
	startFlash(em, playerID, clock.Now(), cfg.Player.FlashDuration)
	sound.PlaySound(cfg.Audio.HurtSound)
}

// DamageZombie 对单个僵尸造成伤害，死亡时结算击杀
//
// 返回:
//   - bool: 本次伤害是否导致死亡
func (s *ProjectileSystem) DamageZombie(zombieID ecs.EntityID, damage int) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, zombieID)
	if !ok {
		return false
	}
	startFlash(s.entityManager, zombieID, s.clock.Now(), s.config.Player.FlashDuration)
	if !health.Damage(damage) {
		return false
	}
	s.killZombie(zombieID, damage)
	return true
}

// killZombie 结算击杀：标记删除、计分、掉落，酸液僵尸以自身为中心爆炸
func (s *ProjectileSystem) killZombie(zombieID ecs.EntityID, damage int) {
	s.entityManager.DestroyEntity(zombieID)
	s.gameState.ZombiesKilled++

	zombie, _ := ecs.GetComponent[*components.ZombieComponent](s.entityManager, zombieID)
	if playerID, ok := findPlayer(s.entityManager); ok {
		if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, playerID); ok {
			player.Kills++
			if zombie != nil {
				player.Score += zombie.Score
			}
		}
	}

	cx, cy, _ := entityCenter(s.entityManager, zombieID)
	if s.loot != nil {
		s.loot.RollLoot(cx, cy)
	}

	if zombie != nil && zombie.Kind.ExplodesOnDeath() && zombie.BlastRadius > 0 {
		s.ApplyBlastDamage(cx, cy, zombie.BlastRadius, damage)
	}
}

// ApplyBlastDamage 对半径内（中心距离严格小于 radius）所有未被标记删除的僵尸造成伤害
// 被炸死的酸液僵尸会递归触发自身爆炸；已标记删除的僵尸被跳过，递归必然终止
//
// 返回:
//   - int: 本次（含链式）击杀数量
func (s *ProjectileSystem) ApplyBlastDamage(cx, cy, radius float64, damage int) int {
	killed := 0
	targets := ecs.GetEntitiesWith3[*components.ZombieComponent, *components.PositionComponent, *components.HealthComponent](s.entityManager)
	for _, id := range targets {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		zx, zy, _ := entityCenter(s.entityManager, id)
		if _, _, dist := normalize(zx-cx, zy-cy); dist >= radius {
			continue
		}
		before := s.gameState.ZombiesKilled
		s.DamageZombie(id, damage)
		killed += s.gameState.ZombiesKilled - before
	}
	return killed
}
