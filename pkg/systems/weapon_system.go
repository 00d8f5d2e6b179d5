package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
)

// WeaponSystem 武器系统
//
// 职责：
//   - 射速限制、弹匣/备弹管理
//   - 发射子弹（霰弹枪多弹丸均匀分布，其他武器随机散布）
//   - 换弹：开始时记录完成时间，每个 tick 检查是否完成
//
// 换弹完成在 tick 内同步结算，重开局时旧武器随实体一起销毁，不会写入新状态。
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	clock         *game.SimClock
	sound         game.SoundPlayer
	rng           *rand.Rand
}

// NewWeaponSystem 创建武器系统
func NewWeaponSystem(em *ecs.EntityManager, cfg *config.GameConfig, clock *game.SimClock, sound game.SoundPlayer, rng *rand.Rand) *WeaponSystem {
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}
	return &WeaponSystem{
		entityManager: em,
		config:        cfg,
		clock:         clock,
		sound:         sound,
		rng:           rng,
	}
}

// CanFire 武器当前是否可以射击
// 条件：弹匣有弹、未在换弹、距上次射击已超过射击间隔（首发不受限）
func (s *WeaponSystem) CanFire(w *components.WeaponState) bool {
	if w == nil || w.CurrentAmmo <= 0 || w.Reloading {
		return false
	}
	if !w.HasFired {
		return true
	}
	return s.clock.Now()-w.LastShotAt >= w.FireDelayMs
}

// Fire 玩家当前武器朝 angleDeg 方向射击
//
// 参数:
//   - playerID: 玩家实体
//   - angleDeg: 瞄准角度（度）
//
// 返回:
//   - int: 生成的子弹数量，无法射击时为 0
func (s *WeaponSystem) Fire(playerID ecs.EntityID, angleDeg float64) int {
	arsenal, ok := ecs.GetComponent[*components.ArsenalComponent](s.entityManager, playerID)
	if !ok {
		return 0
	}
	w := arsenal.CurrentWeapon()
	if !s.CanFire(w) {
		return 0
	}
	cx, cy, ok := entityCenter(s.entityManager, playerID)
	if !ok {
		return 0
	}

	w.CurrentAmmo--
	if w.CurrentAmmo < 0 {
		w.CurrentAmmo = 0
	}
	w.LastShotAt = s.clock.Now()
	w.HasFired = true
	s.sound.PlaySound(w.FireSound)

	angles := s.bulletAngles(w, angleDeg)
	muzzle := s.config.Player.MuzzleOffset
	for _, angle := range angles {
		rad := angle * math.Pi / 180
		entities.NewPlayerBullet(s.entityManager, s.config, w,
			cx+math.Cos(rad)*muzzle, cy+math.Sin(rad)*muzzle, angle)
	}
	return len(angles)
}

// bulletAngles 计算本次射击每颗子弹的角度
func (s *WeaponSystem) bulletAngles(w *components.WeaponState, aim float64) []float64 {
	if w.Pellets > 1 {
		angles := make([]float64, w.Pellets)
		start := aim - w.PelletSpacing*float64(w.Pellets-1)/2
		for i := range angles {
			angles[i] = start + float64(i)*w.PelletSpacing
		}
		return angles
	}
	spread := 0.0
	if w.ShootingAngle > 0 {
		spread = s.rng.Float64()*w.ShootingAngle - w.ShootingAngle/2
	}
	return []float64{aim + spread}
}

// Reload 开始换弹
// 已在换弹、弹匣已满、没有备弹或武器不支持换弹时不做任何事
//
// 返回:
//   - bool: 是否开始了换弹
func (s *WeaponSystem) Reload(w *components.WeaponState) bool {
	if w == nil || w.NoReserve || w.Reloading || w.CurrentAmmo >= w.ClipSize {
		return false
	}
	if !w.InfiniteReserve && w.Reserve <= 0 {
		return false
	}
	now := s.clock.Now()
	w.Reloading = true
	w.ReloadStarted = now
	w.ReloadReadyAt = now + w.ReloadMs
	s.sound.PlaySound(w.ReloadSound)
	return true
}

// ReloadCurrent 为玩家当前武器换弹
func (s *WeaponSystem) ReloadCurrent(playerID ecs.EntityID) bool {
	arsenal, ok := ecs.GetComponent[*components.ArsenalComponent](s.entityManager, playerID)
	if !ok {
		return false
	}
	return s.Reload(arsenal.CurrentWeapon())
}

// SelectWeapon 切换武器，越界索引被忽略
func (s *WeaponSystem) SelectWeapon(playerID ecs.EntityID, index int) bool {
	arsenal, ok := ecs.GetComponent[*components.ArsenalComponent](s.entityManager, playerID)
	if !ok || index < 0 || index >= len(arsenal.Weapons) {
		return false
	}
	if arsenal.Current != index {
		arsenal.Current = index
		log.Printf("[WeaponSystem] Switched to %s", arsenal.Weapons[index].Kind)
	}
	return true
}

// Update 结算到期的换弹
// 换弹期间切换武器不影响结算，完成时补充 min(缺口, 备弹)
func (s *WeaponSystem) Update(dt float64) {
	now := s.clock.Now()
	for _, id := range ecs.GetEntitiesWith1[*components.ArsenalComponent](s.entityManager) {
		arsenal, _ := ecs.GetComponent[*components.ArsenalComponent](s.entityManager, id)
		for _, w := range arsenal.Weapons {
			if w.Reloading && now >= w.ReloadReadyAt {
				completeReload(w)
			}
		}
	}
}

func completeReload(w *components.WeaponState) {
	needed := w.ClipSize - w.CurrentAmmo
	if needed > 0 {
		if w.InfiniteReserve {
			w.CurrentAmmo += needed
		} else {
			added := min(needed, w.Reserve)
			w.CurrentAmmo += added
			w.Reserve -= added
		}
	}
	w.Reloading = false
	// 换弹完成后可以立即射击
	w.HasFired = false
}

// CooldownProgress 射击冷却进度 [0, 1]，1 表示可以射击
func (s *WeaponSystem) CooldownProgress(w *components.WeaponState) float64 {
	if w == nil || !w.HasFired || w.FireDelayMs <= 0 {
		return 1
	}
	return math.Min(1, float64(s.clock.Now()-w.LastShotAt)/float64(w.FireDelayMs))
}

// ReloadProgress 换弹进度 [0, 1]，未在换弹时为 0
func (s *WeaponSystem) ReloadProgress(w *components.WeaponState) float64 {
	if w == nil || !w.Reloading {
		return 0
	}
	if w.ReloadMs <= 0 {
		return 1
	}
	return math.Min(1, float64(s.clock.Now()-w.ReloadStarted)/float64(w.ReloadMs))
}
