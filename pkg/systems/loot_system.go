package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/types"
)

// MaxReserveAmmo 备弹上限，拾取弹药时饱和而不溢出
const MaxReserveAmmo = math.MaxInt32

// ammoDropPool 按波次逐步开放的弹药掉落武器
var ammoDropPool = []types.WeaponKind{
	types.WeaponRifle,
	types.WeaponShotgun,
	types.WeaponSniper,
	types.WeaponRocketLauncher,
}

// LootSystem 掉落生成与拾取
type LootSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	gameState     *game.GameState
	sound         game.SoundPlayer
	rng           *rand.Rand
}

// NewLootSystem 创建掉落系统
func NewLootSystem(em *ecs.EntityManager, cfg *config.GameConfig, gs *game.GameState, sound game.SoundPlayer, rng *rand.Rand) *LootSystem {
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}
	return &LootSystem{
		entityManager: em,
		config:        cfg,
		gameState:     gs,
		sound:         sound,
		rng:           rng,
	}
}

// AmmoPoolSize 当前波次可掉落弹药的武器数量
// 第 1 波不掉弹药；2-3 波步枪；4-5 波加霰弹枪；6-10 波加狙击枪；之后加火箭筒
func AmmoPoolSize(wave int) int {
	switch {
	case wave <= 1:
		return 0
	case wave <= 3:
		return 1
	case wave <= 5:
		return 2
	case wave <= 10:
		return 3
	default:
		return len(ammoDropPool)
	}
}

// RollLoot 僵尸死亡时掷骰掉落，血包与弹药互斥
//
// 参数:
//   - cx, cy: 僵尸中心
//
// 返回:
//   - ecs.EntityID: 生成的掉落物，没有掉落时为 0
func (s *LootSystem) RollLoot(cx, cy float64) ecs.EntityID {
	drops := s.config.Drops
	if s.rng.Float64() < drops.HealthChance {
		heal := drops.HealthMin + s.rng.Intn(drops.HealthMax-drops.HealthMin+1)
		variant := 0
		if drops.HealthVariants > 0 {
			variant = s.rng.Intn(drops.HealthVariants)
		}
		return entities.NewHealthDrop(s.entityManager, s.config, cx, cy, heal, variant)
	}
	if s.rng.Float64() < drops.AmmoChance {
		n := AmmoPoolSize(s.gameState.CurrentWave)
		if n == 0 {
			return 0
		}
		weapon := ammoDropPool[s.rng.Intn(n)]
		return entities.NewAmmoDrop(s.entityManager, s.config, cx, cy, weapon, s.ammoAmount(weapon))
	}
	return 0
}

// ammoAmount 弹药量在弹匣容量上下浮动，困难难度按倍率放大
func (s *LootSystem) ammoAmount(weapon types.WeaponKind) int {
	stats, _ := s.config.Weapon(weapon)
	variance := s.config.Drops.AmmoVariance
	lo := max(1, int(float64(stats.ClipSize)*(1-variance)))
	hi := max(lo, int(float64(stats.ClipSize)*(1+variance)))
	amount := lo + s.rng.Intn(hi-lo+1)

	if mult := s.config.Difficulty(s.gameState.Difficulty).AmmoDropMultiplier; mult > 1 {
		amount *= mult
	}
	return amount
}

// Update 处理玩家与掉落物的拾取
func (s *LootSystem) Update(dt float64) {
	playerID, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, playerID)
	arsenal, _ := ecs.GetComponent[*components.ArsenalComponent](s.entityManager, playerID)

	for _, id := range ecs.GetEntitiesWith3[*components.DropComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager) {
		drop, _ := ecs.GetComponent[*components.DropComponent](s.entityManager, id)
		if drop.Collected || s.entityManager.IsMarkedForDestroy(id) || !overlaps(s.entityManager, playerID, id) {
			continue
		}

		switch drop.Kind {
		case types.DropHealth:
			// 满血时不拾取
			if health == nil || health.CurrentHealth >= health.MaxHealth {
				continue
			}
			health.Heal(drop.HealAmount)
		case types.DropAmmo:
			if arsenal != nil {
				AddAmmo(arsenal.WeaponOf(drop.Weapon), drop.AmmoAmount)
			}
		}

		drop.Collected = true
		s.entityManager.DestroyEntity(id)
		s.sound.PlaySound(s.config.Audio.PickupSound)
	}
}

// AddAmmo 补充弹药
// 没有备弹的武器（火箭筒）直接装入弹匣并以容量为上限，其他武器加到备弹并在上限处饱和
func AddAmmo(w *components.WeaponState, amount int) {
	if w == nil || amount <= 0 || w.InfiniteReserve {
		return
	}
	if w.NoReserve {
		w.CurrentAmmo = min(w.ClipSize, w.CurrentAmmo+amount)
		return
	}
	if w.Reserve > MaxReserveAmmo-amount {
		w.Reserve = MaxReserveAmmo
		return
	}
	w.Reserve += amount
}
