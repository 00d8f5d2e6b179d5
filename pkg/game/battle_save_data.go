package game

import "time"

// BattleSaveVersion 战斗存档版本号
// 用于版本兼容性检查，当数据结构发生不兼容变更时递增
const BattleSaveVersion = 1

// BattleSaveData 战斗存档数据结构
//
// 包含恢复一局游戏所需的全部模拟状态，使用 msgpack 编码。
// 实体之间的引用（子弹已命中的僵尸）以 Zombies 切片下标表示，
// 恢复时重新映射为新的实体ID。
type BattleSaveData struct {
	// 版本和元数据
	Version   int       `msgpack:"version"`
	SessionID string    `msgpack:"session_id"`
	SaveTime  time.Time `msgpack:"save_time"`
	ClockMs   int64     `msgpack:"clock_ms"`

	// 对局状态
	Difficulty            string `msgpack:"difficulty"`
	CharacterID           int    `msgpack:"character_id"`
	CurrentWave           int    `msgpack:"current_wave"`
	ZombiesSpawned        int    `msgpack:"zombies_spawned"`
	ZombiesKilled         int    `msgpack:"zombies_killed"`
	ZombiesKilledLastWave int    `msgpack:"zombies_killed_last_wave"`
	SpawnAccumulatorMs    int64  `msgpack:"spawn_accumulator_ms"`

	// 实体数据
	Player  PlayerData   `msgpack:"player"`
	Zombies []ZombieData `msgpack:"zombies"`
	Bullets []BulletData `msgpack:"bullets"`
	Drops   []DropData   `msgpack:"drops"`

	// 地图
	Grid TileGridData `msgpack:"grid"`
}

// NewBattleSaveData 创建带当前版本号的空存档
func NewBattleSaveData() *BattleSaveData {
	return &BattleSaveData{Version: BattleSaveVersion}
}

// PlayerData 玩家序列化数据
type PlayerData struct {
	X          float64      `msgpack:"x"`
	Y          float64      `msgpack:"y"`
	Health     int          `msgpack:"health"`
	MaxHealth  int          `msgpack:"max_health"`
	Kills      int          `msgpack:"kills"`
	Score      int          `msgpack:"score"`
	Rotation   float64      `msgpack:"rotation"`
	FacingLeft bool         `msgpack:"facing_left"`
	Current    int          `msgpack:"current_weapon"`
	Weapons    []WeaponData `msgpack:"weapons"`
}

// WeaponData 武器运行时状态
// 数值属性（伤害、射速等）来自配置，不写入存档
type WeaponData struct {
	Kind          string `msgpack:"kind"`
	CurrentAmmo   int    `msgpack:"current_ammo"`
	Reserve       int    `msgpack:"reserve"`
	Reloading     bool   `msgpack:"reloading"`
	ReloadStarted int64  `msgpack:"reload_started"`
	ReloadReadyAt int64  `msgpack:"reload_ready_at"`
	LastShotAt    int64  `msgpack:"last_shot_at"`
	HasFired      bool   `msgpack:"has_fired"`
}

// ZombieData 僵尸序列化数据
type ZombieData struct {
	Kind         string    `msgpack:"kind"`
	X            float64   `msgpack:"x"`
	Y            float64   `msgpack:"y"`
	Health       int       `msgpack:"health"`
	MaxHealth    int       `msgpack:"max_health"`
	Speed        float64   `msgpack:"speed"`
	LastAttackAt int64     `msgpack:"last_attack_at"`
	HasAttacked  bool      `msgpack:"has_attacked"`
	Jump         *JumpData `msgpack:"jump,omitempty"`
}

// JumpData 爬行僵尸跳跃状态
type JumpData struct {
	Jumping    bool    `msgpack:"jumping"`
	DirX       float64 `msgpack:"dir_x"`
	DirY       float64 `msgpack:"dir_y"`
	Traveled   float64 `msgpack:"traveled"`
	LastJumpAt int64   `msgpack:"last_jump_at"`
}

// BulletData 子弹序列化数据
type BulletData struct {
	X            float64 `msgpack:"x"`
	Y            float64 `msgpack:"y"`
	Width        int     `msgpack:"width"`
	Height       int     `msgpack:"height"`
	DirX         float64 `msgpack:"dir_x"`
	DirY         float64 `msgpack:"dir_y"`
	Speed        float64 `msgpack:"speed"`
	Weapon       string  `msgpack:"weapon"`
	Damage       int     `msgpack:"damage"`
	ZombieBullet bool    `msgpack:"zombie_bullet"`
	Pierce       bool    `msgpack:"pierce"`
	BlastRadius  float64 `msgpack:"blast_radius"`
	HitZombies   []int   `msgpack:"hit_zombies"` // Zombies 切片下标
}

// DropData 掉落物序列化数据
type DropData struct {
	Kind       string  `msgpack:"kind"`
	X          float64 `msgpack:"x"`
	Y          float64 `msgpack:"y"`
	Width      int     `msgpack:"width"`
	Height     int     `msgpack:"height"`
	HealAmount int     `msgpack:"heal_amount"`
	Variant    int     `msgpack:"variant"`
	AmmoAmount int     `msgpack:"ammo_amount"`
	Weapon     string  `msgpack:"weapon"`
}

// TileGridData 瓦片地图状态
type TileGridData struct {
	OffsetX float64    `msgpack:"offset_x"`
	OffsetY float64    `msgpack:"offset_y"`
	Cells   []CellData `msgpack:"cells"`
}

// CellData 单个已生成格子
type CellData struct {
	X       int `msgpack:"x"`
	Y       int `msgpack:"y"`
	Variant int `msgpack:"variant"`
}
