package game

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultSaveSlot 默认存档位
const DefaultSaveSlot = "battle"

// ErrNoSave 存档位为空
var ErrNoSave = errors.New("no saved battle")

// BattleSerializer 战斗状态序列化器
//
// 负责从 EntityManager 收集战斗快照，编码为 msgpack 并写入 persistence.Store。
// 只读取实体状态，不修改；恢复实体由 simulation 包完成。
type BattleSerializer struct {
	store persistence.Store
}

// NewBattleSerializer 创建序列化器
//
// 参数：
//   - store: 存储后端，可为 nil（仅使用 Encode/Decode/Collect）
func NewBattleSerializer(store persistence.Store) *BattleSerializer {
	return &BattleSerializer{store: store}
}

// Encode 编码存档数据
func (s *BattleSerializer) Encode(data *BattleSaveData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("save data is nil")
	}
	b, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save data: %w", err)
	}
	return b, nil
}

// Decode 解码存档数据并检查版本
func (s *BattleSerializer) Decode(b []byte) (*BattleSaveData, error) {
	var data BattleSaveData
	if err := msgpack.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to decode save data: %w", err)
	}
	if data.Version != BattleSaveVersion {
		return nil, fmt.Errorf("incompatible save version: %d (expected %d)",
			data.Version, BattleSaveVersion)
	}
	return &data, nil
}

// SaveBattle 写入存档位
//
// 参数：
//   - slot: 存档位名称，为空时使用 DefaultSaveSlot
//   - data: Collect 得到的快照
func (s *BattleSerializer) SaveBattle(slot string, data *BattleSaveData) error {
	if s.store == nil {
		return fmt.Errorf("no storage backend configured")
	}
	if slot == "" {
		slot = DefaultSaveSlot
	}
	b, err := s.Encode(data)
	if err != nil {
		return err
	}
	if err := s.store.Put(slot, b); err != nil {
		return fmt.Errorf("failed to write save %s: %w", slot, err)
	}
	log.Printf("[BattleSerializer] Saved battle to %s: Wave=%d, Zombies=%d, Bullets=%d, Drops=%d, %d bytes",
		slot, data.CurrentWave, len(data.Zombies), len(data.Bullets), len(data.Drops), len(b))
	return nil
}

// LoadBattle 读取存档位
// 存档位为空时返回 ErrNoSave
func (s *BattleSerializer) LoadBattle(slot string) (*BattleSaveData, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no storage backend configured")
	}
	if slot == "" {
		slot = DefaultSaveSlot
	}
	b, err := s.store.Get(slot)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %s: %w", slot, err)
	}
	data, err := s.Decode(b)
	if err != nil {
		return nil, err
	}
	log.Printf("[BattleSerializer] Loaded battle from %s: Wave=%d, Zombies=%d", slot, data.CurrentWave, len(data.Zombies))
	return data, nil
}

// HasSave 存档位是否有数据
func (s *BattleSerializer) HasSave(slot string) bool {
	if s.store == nil {
		return false
	}
	if slot == "" {
		slot = DefaultSaveSlot
	}
	return s.store.Has(slot)
}

// DeleteSave 清空存档位
func (s *BattleSerializer) DeleteSave(slot string) error {
	if s.store == nil {
		return nil
	}
	if slot == "" {
		slot = DefaultSaveSlot
	}
	return s.store.Delete(slot)
}

// Collect 收集当前战斗快照
//
// 参数：
//   - em: 实体管理器
//   - gs: 对局状态
//   - clock: 模拟时钟
//
// 返回：
//   - *BattleSaveData: 快照（标记删除的实体不计入）
func (s *BattleSerializer) Collect(em *ecs.EntityManager, gs *GameState, clock *SimClock) (*BattleSaveData, error) {
	if em == nil {
		return nil, fmt.Errorf("EntityManager is nil")
	}
	if gs == nil {
		return nil, fmt.Errorf("GameState is nil")
	}

	data := NewBattleSaveData()
	data.SaveTime = time.Now()
	data.SessionID = gs.SessionID
	if clock != nil {
		data.ClockMs = clock.Now()
	}
	data.Difficulty = gs.Difficulty.String()
	data.CharacterID = gs.CharacterID
	data.CurrentWave = gs.CurrentWave
	data.ZombiesSpawned = gs.ZombiesSpawned
	data.ZombiesKilled = gs.ZombiesKilled
	data.ZombiesKilledLastWave = gs.ZombiesKilledLastWave
	data.SpawnAccumulatorMs = gs.SpawnAccumulatorMs

	if err := s.collectPlayer(em, data); err != nil {
		return nil, err
	}
	zombieIndex := s.collectZombies(em, data)
	s.collectBullets(em, data, zombieIndex)
	s.collectDrops(em, data)
	s.collectGrid(em, data)
	return data, nil
}

// collectPlayer 收集玩家数据，不存在玩家时返回错误
func (s *BattleSerializer) collectPlayer(em *ecs.EntityManager, data *BattleSaveData) error {
	players := ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.PositionComponent,
		*components.HealthComponent,
	](em)
	if len(players) == 0 {
		return fmt.Errorf("no player entity to save")
	}
	id := players[0]
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)

	pd := PlayerData{
		X:         pos.X,
		Y:         pos.Y,
		Health:    health.CurrentHealth,
		MaxHealth: health.MaxHealth,
		Kills:     player.Kills,
		Score:     player.Score,
	}
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok {
		pd.Rotation = facing.Rotation
		pd.FacingLeft = facing.FacingLeft
	}
	if arsenal, ok := ecs.GetComponent[*components.ArsenalComponent](em, id); ok {
		pd.Current = arsenal.Current
		for _, w := range arsenal.Weapons {
			pd.Weapons = append(pd.Weapons, WeaponData{
				Kind:          w.Kind.String(),
				CurrentAmmo:   w.CurrentAmmo,
				Reserve:       w.Reserve,
				Reloading:     w.Reloading,
				ReloadStarted: w.ReloadStarted,
				ReloadReadyAt: w.ReloadReadyAt,
				LastShotAt:    w.LastShotAt,
				HasFired:      w.HasFired,
			})
		}
	}
	data.Player = pd
	return nil
}

// collectZombies 收集僵尸数据，返回实体ID到切片下标的映射
func (s *BattleSerializer) collectZombies(em *ecs.EntityManager, data *BattleSaveData) map[ecs.EntityID]int {
	index := make(map[ecs.EntityID]int)
	entities := ecs.GetEntitiesWith3[
		*components.ZombieComponent,
		*components.PositionComponent,
		*components.HealthComponent,
	](em)

	for _, id := range entities {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)

		zd := ZombieData{
			Kind:         zombie.Kind.String(),
			X:            pos.X,
			Y:            pos.Y,
			Health:       health.CurrentHealth,
			MaxHealth:    health.MaxHealth,
			Speed:        zombie.Speed,
			LastAttackAt: zombie.LastAttackAt,
			HasAttacked:  zombie.HasAttacked,
		}
		if jump, ok := ecs.GetComponent[*components.ReptileJumpComponent](em, id); ok {
			zd.Jump = &JumpData{
				Jumping:    jump.State == components.ReptileJumping,
				DirX:       jump.DirX,
				DirY:       jump.DirY,
				Traveled:   jump.Traveled,
				LastJumpAt: jump.LastJumpAt,
			}
		}
		index[id] = len(data.Zombies)
		data.Zombies = append(data.Zombies, zd)
	}
	return index
}

// collectBullets 收集子弹数据
func (s *BattleSerializer) collectBullets(em *ecs.EntityManager, data *BattleSaveData, zombieIndex map[ecs.EntityID]int) {
	entities := ecs.GetEntitiesWith3[
		*components.BulletComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](em)

	for _, id := range entities {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.BulletComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)

		bd := BulletData{
			X:            pos.X,
			Y:            pos.Y,
			Width:        col.Width,
			Height:       col.Height,
			DirX:         bullet.DirX,
			DirY:         bullet.DirY,
			Speed:        bullet.Speed,
			Weapon:       bullet.Weapon.String(),
			Damage:       bullet.Damage,
			ZombieBullet: bullet.ZombieBullet,
			Pierce:       bullet.Pierce,
			BlastRadius:  bullet.BlastRadius,
		}
		for hit := range bullet.HitSet {
			if i, ok := zombieIndex[hit]; ok {
				bd.HitZombies = append(bd.HitZombies, i)
			}
		}
		sort.Ints(bd.HitZombies)
		data.Bullets = append(data.Bullets, bd)
	}
}

// collectDrops 收集未被拾取的掉落物
func (s *BattleSerializer) collectDrops(em *ecs.EntityManager, data *BattleSaveData) {
	entities := ecs.GetEntitiesWith3[
		*components.DropComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](em)

	for _, id := range entities {
		drop, _ := ecs.GetComponent[*components.DropComponent](em, id)
		if drop.Collected || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		data.Drops = append(data.Drops, DropData{
			Kind:       drop.Kind.String(),
			X:          pos.X,
			Y:          pos.Y,
			Width:      col.Width,
			Height:     col.Height,
			HealAmount: drop.HealAmount,
			Variant:    drop.Variant,
			AmmoAmount: drop.AmmoAmount,
			Weapon:     drop.Weapon.String(),
		})
	}
}

// collectGrid 收集地图偏移和已生成格子（按行列排序，输出稳定）
func (s *BattleSerializer) collectGrid(em *ecs.EntityManager, data *BattleSaveData) {
	grids := ecs.GetEntitiesWith1[*components.TileGridComponent](em)
	if len(grids) == 0 {
		return
	}
	grid, _ := ecs.GetComponent[*components.TileGridComponent](em, grids[0])
	data.Grid.OffsetX = grid.OffsetX
	data.Grid.OffsetY = grid.OffsetY
	data.Grid.Cells = make([]CellData, 0, len(grid.Cells))
	for key, variant := range grid.Cells {
		data.Grid.Cells = append(data.Grid.Cells, CellData{X: key.X, Y: key.Y, Variant: variant})
	}
	sort.Slice(data.Grid.Cells, func(i, j int) bool {
		a, b := data.Grid.Cells[i], data.Grid.Cells[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
