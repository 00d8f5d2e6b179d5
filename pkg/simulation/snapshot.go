package simulation

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/entities"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/types"
)

// Snapshot 收集当前对局快照，失败时返回 nil
func (s *Simulation) Snapshot() *game.BattleSaveData {
	data, err := s.serializer.Collect(s.entityManager, s.gameState, s.clock)
	if err != nil {
		log.Printf("[Simulation] Warning: failed to collect snapshot: %v", err)
		return nil
	}
	return data
}

// SaveGame 把当前对局写入默认存档位
func (s *Simulation) SaveGame() bool {
	data := s.Snapshot()
	if data == nil {
		return false
	}
	if err := s.serializer.SaveBattle(game.DefaultSaveSlot, data); err != nil {
		log.Printf("[Simulation] ERROR: Failed to save battle: %v", err)
		return false
	}
	return true
}

// LoadGame 从默认存档位恢复对局
// 读取或校验失败时当前对局保持不变
func (s *Simulation) LoadGame() bool {
	data, err := s.serializer.LoadBattle(game.DefaultSaveSlot)
	if err != nil {
		if errors.Is(err, game.ErrNoSave) {
			log.Printf("[Simulation] No battle save found")
		} else {
			log.Printf("[Simulation] ERROR: Failed to load battle: %v", err)
		}
		return false
	}
	if err := s.Restore(data); err != nil {
		log.Printf("[Simulation] ERROR: Failed to restore battle: %v", err)
		return false
	}
	return true
}

// HasSave 默认存档位是否有数据
func (s *Simulation) HasSave() bool {
	return s.serializer.HasSave(game.DefaultSaveSlot)
}

// Restore 用快照替换当前对局
//
// 先在新的实体管理器中重建全部实体，所有数据校验通过后才替换当前状态；
// 任何一项无效时返回错误，当前对局不受影响。恢复后的对局处于非暂停状态。
func (s *Simulation) Restore(data *game.BattleSaveData) error {
	if data == nil {
		return fmt.Errorf("save data is nil")
	}
	if data.Version != game.BattleSaveVersion {
		return fmt.Errorf("incompatible save version: %d", data.Version)
	}
	difficulty, ok := types.DifficultyFromString(data.Difficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty: %q", data.Difficulty)
	}

	em := ecs.NewEntityManager()
	gridEntity := entities.NewTileGrid(em, s.config)
	restoreGrid(em, gridEntity, data.Grid)

	gs := &game.GameState{
		SessionID:             data.SessionID,
		Difficulty:            difficulty,
		CharacterID:           max(1, data.CharacterID),
		CurrentWave:           max(1, data.CurrentWave),
		ZombiesSpawned:        data.ZombiesSpawned,
		ZombiesKilled:         data.ZombiesKilled,
		ZombiesKilledLastWave: data.ZombiesKilledLastWave,
		SpawnAccumulatorMs:    data.SpawnAccumulatorMs,
	}

	playerID, err := s.restorePlayer(em, gs.CharacterID, data.Player)
	if err != nil {
		return err
	}
	zombieIDs, err := s.restoreZombies(em, data.Zombies, data.ClockMs)
	if err != nil {
		return err
	}
	if err := restoreBullets(em, data.Bullets, zombieIDs); err != nil {
		return err
	}
	if err := restoreDrops(em, data.Drops); err != nil {
		return err
	}

	clock := game.NewSimClock()
	clock.Restore(data.ClockMs)

	s.entityManager = em
	s.gameState = gs
	s.clock = clock
	s.gridEntity = gridEntity
	s.playerID = playerID
	s.lastRank = 0
	s.wire()

	log.Printf("[Simulation] Restored session %s: wave=%d, zombies=%d, bullets=%d, drops=%d",
		gs.SessionID, gs.CurrentWave, len(data.Zombies), len(data.Bullets), len(data.Drops))
	return nil
}

func restoreGrid(em *ecs.EntityManager, gridEntity ecs.EntityID, data game.TileGridData) {
	grid, _ := ecs.GetComponent[*components.TileGridComponent](em, gridEntity)
	grid.OffsetX = data.OffsetX
	grid.OffsetY = data.OffsetY
	for _, cell := range data.Cells {
		variant := cell.Variant
		if variant < 0 || variant >= grid.Variants {
			variant = 0
		}
		grid.Cells[components.CellKey{X: cell.X, Y: cell.Y}] = variant
	}
}

// restorePlayer 重建玩家，武器数值取自当前配置，只恢复运行时状态
func (s *Simulation) restorePlayer(em *ecs.EntityManager, characterID int, data game.PlayerData) (ecs.EntityID, error) {
	id, err := entities.NewPlayer(em, s.config, s.sound, data.X, data.Y, characterID)
	if err != nil {
		return 0, fmt.Errorf("failed to restore player: %w", err)
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if data.MaxHealth > 0 {
		health.MaxHealth = data.MaxHealth
	}
	health.CurrentHealth = min(data.Health, health.MaxHealth)

	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	player.Kills = data.Kills
	player.Score = data.Score

	facing, _ := ecs.GetComponent[*components.FacingComponent](em, id)
	facing.Rotation = data.Rotation
	facing.FacingLeft = data.FacingLeft

	arsenal, _ := ecs.GetComponent[*components.ArsenalComponent](em, id)
	for _, wd := range data.Weapons {
		kind, ok := types.WeaponKindFromString(wd.Kind)
		if !ok {
			return 0, fmt.Errorf("unknown weapon in save: %q", wd.Kind)
		}
		w := arsenal.WeaponOf(kind)
		w.CurrentAmmo = max(0, min(wd.CurrentAmmo, w.ClipSize))
		if !w.InfiniteReserve && !w.NoReserve {
			w.Reserve = max(0, wd.Reserve)
		}
		w.Reloading = wd.Reloading
		w.ReloadStarted = wd.ReloadStarted
		w.ReloadReadyAt = wd.ReloadReadyAt
		w.LastShotAt = wd.LastShotAt
		w.HasFired = wd.HasFired
	}
	if data.Current >= 0 && data.Current < len(arsenal.Weapons) {
		arsenal.Current = data.Current
	}
	return id, nil
}

// restoreZombies 重建僵尸，返回与存档下标一一对应的实体ID
func (s *Simulation) restoreZombies(em *ecs.EntityManager, zombies []game.ZombieData, nowMs int64) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(zombies))
	for i, zd := range zombies {
		kind, ok := types.ZombieKindFromString(zd.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown zombie kind at %d: %q", i, zd.Kind)
		}
		id, err := entities.NewZombie(em, s.config, kind, zd.X, zd.Y, 1, nowMs)
		if err != nil {
			return nil, fmt.Errorf("failed to restore zombie %d: %w", i, err)
		}

		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		health.CurrentHealth = zd.Health
		if zd.MaxHealth > 0 {
			health.MaxHealth = zd.MaxHealth
		}
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		if zd.Speed > 0 {
			zombie.Speed = zd.Speed
		}
		zombie.LastAttackAt = zd.LastAttackAt
		zombie.HasAttacked = zd.HasAttacked

		if jump, ok := ecs.GetComponent[*components.ReptileJumpComponent](em, id); ok && zd.Jump != nil {
			if zd.Jump.Jumping {
				jump.State = components.ReptileJumping
			}
			jump.DirX = zd.Jump.DirX
			jump.DirY = zd.Jump.DirY
			jump.Traveled = zd.Jump.Traveled
			jump.LastJumpAt = zd.Jump.LastJumpAt
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func restoreBullets(em *ecs.EntityManager, bullets []game.BulletData, zombieIDs []ecs.EntityID) error {
	for i, bd := range bullets {
		weapon, ok := types.WeaponKindFromString(bd.Weapon)
		if !ok {
			return fmt.Errorf("unknown weapon for bullet %d: %q", i, bd.Weapon)
		}
		bullet := &components.BulletComponent{
			DirX:         bd.DirX,
			DirY:         bd.DirY,
			Rotation:     math.Atan2(bd.DirY, bd.DirX) * 180 / math.Pi,
			Speed:        bd.Speed,
			Weapon:       weapon,
			Damage:       bd.Damage,
			ZombieBullet: bd.ZombieBullet,
			Pierce:       bd.Pierce,
			BlastRadius:  bd.BlastRadius,
		}
		for _, zi := range bd.HitZombies {
			if zi < 0 || zi >= len(zombieIDs) {
				return fmt.Errorf("bullet %d references zombie %d out of range", i, zi)
			}
			bullet.MarkHit(zombieIDs[zi])
		}
		entities.RestoreBullet(em, bd.X, bd.Y, bd.Width, bd.Height, bullet)
	}
	return nil
}

func restoreDrops(em *ecs.EntityManager, drops []game.DropData) error {
	for i, dd := range drops {
		kind, ok := types.DropKindFromString(dd.Kind)
		if !ok {
			return fmt.Errorf("unknown drop kind at %d: %q", i, dd.Kind)
		}
		drop := &components.DropComponent{
			Kind:       kind,
			HealAmount: dd.HealAmount,
			Variant:    dd.Variant,
			AmmoAmount: dd.AmmoAmount,
		}
		if kind == types.DropAmmo {
			weapon, ok := types.WeaponKindFromString(dd.Weapon)
			if !ok {
				return fmt.Errorf("unknown weapon for drop %d: %q", i, dd.Weapon)
			}
			drop.Weapon = weapon
		}
		entities.RestoreDrop(em, dd.X, dd.Y, dd.Width, dd.Height, drop)
	}
	return nil
}
