package entities

import (
	"fmt"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/types"
)

// SoundDurations 提供音效时长，用于推导换弹时间
// game.SoundPlayer 满足此接口
type SoundDurations interface {
	SoundDurationMs(path string) (int64, bool)
}

// NewPlayer 创建玩家实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - sounds: 音效时长来源，可为 nil（使用配置中的换弹时长）
//   - x, y: 玩家左上角世界坐标
//   - characterID: 角色编号（从 1 开始）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID，失败时为 0
//   - error: 武器配置缺失时返回错误
func NewPlayer(em *ecs.EntityManager, cfg *config.GameConfig, sounds SoundDurations, x, y float64, characterID int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	arsenal, err := NewArsenal(cfg, sounds)
	if err != nil {
		return 0, err
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: cfg.Player.MaxHealth,
		MaxHealth:     cfg.Player.MaxHealth,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{CharacterID: characterID})
	ecs.AddComponent(em, id, &components.FacingComponent{})
	ecs.AddComponent(em, id, arsenal)
	return id, nil
}

// NewArsenal 按 types.WeaponKind 顺序创建全部武器，初始选中手枪
func NewArsenal(cfg *config.GameConfig, sounds SoundDurations) (*components.ArsenalComponent, error) {
	arsenal := &components.ArsenalComponent{
		Weapons: make([]*components.WeaponState, 0, int(types.WeaponKindCount)),
	}
	for _, kind := range types.AllWeaponKinds() {
		stats, ok := cfg.Weapon(kind)
		if !ok {
			return nil, fmt.Errorf("missing weapon config: %s", kind)
		}
		arsenal.Weapons = append(arsenal.Weapons, NewWeaponState(kind, stats, sounds))
	}
	return arsenal, nil
}

// NewWeaponState 根据配置创建武器状态
// 换弹时长优先取换弹音效的长度，音效不可用时回退到配置值
func NewWeaponState(kind types.WeaponKind, stats config.WeaponStats, sounds SoundDurations) *components.WeaponState {
	clip := stats.StartClip
	if clip <= 0 || clip > stats.ClipSize {
		clip = stats.ClipSize
	}
	reserve := stats.Reserve
	if stats.InfiniteReserve || stats.NoReserve {
		reserve = 0
	}

	reloadMs := stats.ReloadMs
	if sounds != nil && stats.ReloadSound != "" {
		if ms, ok := sounds.SoundDurationMs(stats.ReloadSound); ok && ms > 0 {
			reloadMs = ms
		}
	}

	pellets := stats.Pellets
	if pellets < 1 {
		pellets = 1
	}

	return &components.WeaponState{
		Kind:            kind,
		Damage:          stats.Damage,
		FireDelayMs:     stats.FireDelayMs(),
		ClipSize:        stats.ClipSize,
		CurrentAmmo:     clip,
		Reserve:         reserve,
		InfiniteReserve: stats.InfiniteReserve,
		NoReserve:       stats.NoReserve,
		ShootingAngle:   stats.ShootingAngle,
		Pellets:         pellets,
		PelletSpacing:   stats.PelletSpacing,
		Pierce:          stats.Pierce,
		BlastRadius:     stats.BlastRadius,
		ReloadMs:        reloadMs,
		FireSound:       stats.FireSound,
		ReloadSound:     stats.ReloadSound,
		HitSound:        stats.HitSound,
	}
}
