package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/decker502/zombieshot/pkg/embedded"
	"github.com/decker502/zombieshot/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 内嵌默认配置文件路径
const DefaultGameConfigPath = "data/game_config.yaml"

// WorldConfig 场景与瓦片地图配置
type WorldConfig struct {
	ScreenWidth    int `yaml:"screenWidth"`    // 逻辑屏幕宽度（像素）
	ScreenHeight   int `yaml:"screenHeight"`   // 逻辑屏幕高度（像素）
	TicksPerSecond int `yaml:"ticksPerSecond"` // 模拟频率，速度配置均以"像素/tick"计

	TileSize           int     `yaml:"tileSize"`           // 瓦片边长（像素）
	TileVariants       int     `yaml:"tileVariants"`       // 瓦片外观种类数
	ObstacleVariants   []int   `yaml:"obstacleVariants"`   // 属于障碍物的瓦片外观索引
	FloorChance        float64 `yaml:"floorChance"`        // 新格子直接使用地板（外观 0）的概率
	EvictRadiusCells   int     `yaml:"evictRadiusCells"`   // 超出此半径的格子会被遗忘，0 表示不淘汰
	EvictIntervalTicks int     `yaml:"evictIntervalTicks"` // 淘汰检查间隔

	SpawnSafeDistance   float64 `yaml:"spawnSafeDistance"`   // 僵尸生成点距玩家的最小距离
	SpawnMaxAttempts    int     `yaml:"spawnMaxAttempts"`    // 生成点随机重试上限
	RecenterRadiusCells int     `yaml:"recenterRadiusCells"` // 重开局时螺旋搜索半径（格）
}

// PlayerConfig 玩家属性配置
type PlayerConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	MaxHealth     int     `yaml:"maxHealth"`
	Speed         float64 `yaml:"speed"`         // 像素/tick
	MuzzleOffset  float64 `yaml:"muzzleOffset"`  // 枪口距玩家中心的距离
	WalkFrameMs   int64   `yaml:"walkFrameMs"`   // 行走动画帧间隔
	WalkFrames    int     `yaml:"walkFrames"`    // 行走动画帧数
	CharacterMax  int     `yaml:"characterMax"`  // 可选角色数量
	FlashDuration int64   `yaml:"flashDuration"` // 受击闪烁时长（毫秒）
}

// BulletConfig 子弹配置
type BulletConfig struct {
	Speed          float64 `yaml:"speed"`          // 像素/tick
	Size           int     `yaml:"size"`           // 普通子弹碰撞盒边长
	RocketSize     int     `yaml:"rocketSize"`     // 火箭弹碰撞盒边长
	AcidSize       int     `yaml:"acidSize"`       // 酸液弹碰撞盒边长
	AcidSpeedRatio float64 `yaml:"acidSpeedRatio"` // 酸液弹速度相对普通子弹的比例
}

// WeaponStats 单个武器的属性配置
type WeaponStats struct {
	ShotsPerMinute  int     `yaml:"shotsPerMinute"`
	Damage          int     `yaml:"damage"`
	ClipSize        int     `yaml:"clipSize"`
	StartClip       int     `yaml:"startClip"`       // 初始弹匣内弹药，<=0 表示满弹匣
	Reserve         int     `yaml:"reserve"`         // 初始备弹
	InfiniteReserve bool    `yaml:"infiniteReserve"` // 备弹无限（手枪）
	NoReserve       bool    `yaml:"noReserve"`       // 没有备弹概念，不可换弹（火箭筒）
	ShootingAngle   float64 `yaml:"shootingAngle"`   // 随机散布总角度（度）
	Pellets         int     `yaml:"pellets"`         // 每次射击弹丸数
	PelletSpacing   float64 `yaml:"pelletSpacing"`   // 相邻弹丸夹角（度）
	Pierce          bool    `yaml:"pierce"`          // 子弹是否穿透
	BlastRadius     float64 `yaml:"blastRadius"`     // >0 时命中触发范围伤害
	ReloadMs        int64   `yaml:"reloadMs"`        // 换弹时长（音效时长不可用时的回退值）
	FireSound       string  `yaml:"fireSound"`
	ReloadSound     string  `yaml:"reloadSound"`
	HitSound        string  `yaml:"hitSound"`
}

// FireDelayMs 由射速推导出的射击间隔（毫秒）
func (w WeaponStats) FireDelayMs() int64 {
	if w.ShotsPerMinute <= 0 {
		return 0
	}
	return int64(60000 / w.ShotsPerMinute)
}

// ZombieStats 单个僵尸类型的属性配置
type ZombieStats struct {
	Health           int     `yaml:"health"`
	Speed            float64 `yaml:"speed"` // 像素/tick，未乘难度系数
	Damage           int     `yaml:"damage"`
	Score            int     `yaml:"score"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	AttackRange      float64 `yaml:"attackRange"`
	AttacksPerMinute int     `yaml:"attacksPerMinute"`
	BlastRadius      float64 `yaml:"blastRadius"` // 死亡爆炸半径（酸液僵尸）

	// 跳跃参数（爬行僵尸）
	JumpCooldownMs int64   `yaml:"jumpCooldownMs"`
	JumpRange      float64 `yaml:"jumpRange"`
	JumpSpeed      float64 `yaml:"jumpSpeed"`   // 跳跃时速度倍率
	JumpTrigger    float64 `yaml:"jumpTrigger"` // 触发跳跃的距离
}

// AttackDelayMs 由攻击频率推导出的攻击间隔（毫秒）
func (z ZombieStats) AttackDelayMs() int64 {
	if z.AttacksPerMinute <= 0 {
		return 0
	}
	return int64(60000 / z.AttacksPerMinute)
}

// DifficultyStats 难度参数
type DifficultyStats struct {
	SpawnIntervalMs    int64   `yaml:"spawnIntervalMs"`
	ZombiesPerWave     int     `yaml:"zombiesPerWave"`
	IncreasePercent    int     `yaml:"increasePercent"`
	SpeedMultiplier    float64 `yaml:"speedMultiplier"`
	AmmoDropMultiplier int     `yaml:"ammoDropMultiplier"`
}

// DropConfig 掉落配置
type DropConfig struct {
	HealthChance   float64 `yaml:"healthChance"`
	AmmoChance     float64 `yaml:"ammoChance"`
	HealthMin      int     `yaml:"healthMin"`
	HealthMax      int     `yaml:"healthMax"`
	HealthSize     int     `yaml:"healthSize"`
	AmmoSize       int     `yaml:"ammoSize"`
	AmmoVariance   float64 `yaml:"ammoVariance"`   // 弹药数量相对弹匣容量的浮动比例
	HealthVariants int     `yaml:"healthVariants"` // 血包外观数量
}

// ExplosionConfig 爆炸特效配置
type ExplosionConfig struct {
	SizeFactor float64 `yaml:"sizeFactor"` // 特效尺寸 = 爆炸半径 × SizeFactor
	FrameMs    int64   `yaml:"frameMs"`
	Frames     int     `yaml:"frames"`
}

// AudioConfig 音频资源配置
type AudioConfig struct {
	Playlist    []string `yaml:"playlist"`
	HurtSound   string   `yaml:"hurtSound"`
	PickupSound string   `yaml:"pickupSound"`
}

// GameConfig 游戏总配置
type GameConfig struct {
	World        WorldConfig                `yaml:"world"`
	Player       PlayerConfig               `yaml:"player"`
	Bullet       BulletConfig               `yaml:"bullet"`
	Weapons      map[string]WeaponStats     `yaml:"weapons"`
	Zombies      map[string]ZombieStats     `yaml:"zombies"`
	Difficulties map[string]DifficultyStats `yaml:"difficulties"`
	Drops        DropConfig                 `yaml:"drops"`
	Explosion    ExplosionConfig            `yaml:"explosion"`
	Audio        AudioConfig                `yaml:"audio"`
}

// LoadGameConfig 加载游戏配置
// 以 "data/" 开头且内嵌资源已初始化时从内嵌文件读取，否则从磁盘读取。
// 文件中缺失的段落保留 DefaultGameConfig 的默认值（武器、僵尸等映射按条目整体覆盖）。
//
// 参数：
//
//	path - 配置文件路径
//
// 返回：
//
//	*GameConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败时返回
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", path, err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", path, err)
	}

	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// Weapon 获取武器配置
func (c *GameConfig) Weapon(kind types.WeaponKind) (WeaponStats, bool) {
	stats, ok := c.Weapons[kind.String()]
	return stats, ok
}

// Zombie 获取僵尸配置
func (c *GameConfig) Zombie(kind types.ZombieKind) (ZombieStats, bool) {
	stats, ok := c.Zombies[kind.String()]
	return stats, ok
}

// Difficulty 获取难度参数，未配置时回退到普通难度
func (c *GameConfig) Difficulty(d types.Difficulty) DifficultyStats {
	if stats, ok := c.Difficulties[d.String()]; ok {
		return stats
	}
	return c.Difficulties[types.DifficultyNormal.String()]
}

// validateGameConfig 验证游戏配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	w := cfg.World
	if w.ScreenWidth <= 0 || w.ScreenHeight <= 0 {
		return fmt.Errorf("world: screen size must be positive, got %dx%d", w.ScreenWidth, w.ScreenHeight)
	}
	if w.TicksPerSecond <= 0 {
		return fmt.Errorf("world: ticksPerSecond must be positive, got %d", w.TicksPerSecond)
	}
	if w.TileSize <= 0 {
		return fmt.Errorf("world: tileSize must be positive, got %d", w.TileSize)
	}
	if w.TileVariants <= 0 {
		return fmt.Errorf("world: tileVariants must be positive, got %d", w.TileVariants)
	}
	for _, v := range w.ObstacleVariants {
		if v <= 0 || v >= w.TileVariants {
			return fmt.Errorf("world: obstacle variant %d out of range [1, %d)", v, w.TileVariants)
		}
	}
	if w.FloorChance < 0 || w.FloorChance > 1 {
		return fmt.Errorf("world: floorChance must be in [0, 1], got %v", w.FloorChance)
	}
	if w.SpawnMaxAttempts <= 0 {
		return fmt.Errorf("world: spawnMaxAttempts must be positive, got %d", w.SpawnMaxAttempts)
	}

	p := cfg.Player
	if p.Width <= 0 || p.Height <= 0 || p.MaxHealth <= 0 {
		return fmt.Errorf("player: size and maxHealth must be positive")
	}
	if p.Speed < 0 {
		return fmt.Errorf("player: speed cannot be negative, got %v", p.Speed)
	}

	if cfg.Bullet.Speed <= 0 {
		return fmt.Errorf("bullet: speed must be positive, got %v", cfg.Bullet.Speed)
	}

	for _, kind := range types.AllWeaponKinds() {
		stats, ok := cfg.Weapon(kind)
		if !ok {
			return fmt.Errorf("weapon %s: missing configuration", kind)
		}
		if err := validateWeaponStats(kind, stats); err != nil {
			return err
		}
	}

	for i := 0; i < types.ZombieKindCount; i++ {
		kind := types.ZombieKind(i)
		stats, ok := cfg.Zombie(kind)
		if !ok {
			return fmt.Errorf("zombie %s: missing configuration", kind)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("zombie %s: health must be positive, got %d", kind, stats.Health)
		}
		if stats.Width <= 0 || stats.Height <= 0 {
			return fmt.Errorf("zombie %s: size must be positive", kind)
		}
		if stats.Speed < 0 || stats.Damage < 0 || stats.Score < 0 {
			return fmt.Errorf("zombie %s: speed, damage and score cannot be negative", kind)
		}
	}

	for _, d := range []types.Difficulty{types.DifficultyNormal, types.DifficultyHard} {
		stats, ok := cfg.Difficulties[d.String()]
		if !ok {
			return fmt.Errorf("difficulty %s: missing configuration", d)
		}
		if stats.SpawnIntervalMs <= 0 {
			return fmt.Errorf("difficulty %s: spawnIntervalMs must be positive, got %d", d, stats.SpawnIntervalMs)
		}
		if stats.ZombiesPerWave <= 0 {
			return fmt.Errorf("difficulty %s: zombiesPerWave must be positive, got %d", d, stats.ZombiesPerWave)
		}
		if stats.IncreasePercent < 0 {
			return fmt.Errorf("difficulty %s: increasePercent cannot be negative, got %d", d, stats.IncreasePercent)
		}
		if stats.SpeedMultiplier <= 0 {
			return fmt.Errorf("difficulty %s: speedMultiplier must be positive, got %v", d, stats.SpeedMultiplier)
		}
	}

	dr := cfg.Drops
	if dr.HealthChance < 0 || dr.HealthChance > 1 || dr.AmmoChance < 0 || dr.AmmoChance > 1 {
		return fmt.Errorf("drops: chances must be in [0, 1]")
	}
	if dr.HealthMin <= 0 || dr.HealthMax < dr.HealthMin {
		return fmt.Errorf("drops: invalid health range [%d, %d]", dr.HealthMin, dr.HealthMax)
	}

	return nil
}

func validateWeaponStats(kind types.WeaponKind, s WeaponStats) error {
	if s.ShotsPerMinute <= 0 {
		return fmt.Errorf("weapon %s: shotsPerMinute must be positive, got %d", kind, s.ShotsPerMinute)
	}
	if s.ClipSize <= 0 {
		return fmt.Errorf("weapon %s: clipSize must be positive, got %d", kind, s.ClipSize)
	}
	if s.StartClip > s.ClipSize {
		return fmt.Errorf("weapon %s: startClip %d exceeds clipSize %d", kind, s.StartClip, s.ClipSize)
	}
	if s.Damage < 0 || s.Reserve < 0 {
		return fmt.Errorf("weapon %s: damage and reserve cannot be negative", kind)
	}
	if s.Pellets < 1 {
		return fmt.Errorf("weapon %s: pellets must be at least 1, got %d", kind, s.Pellets)
	}
	if s.InfiniteReserve && s.NoReserve {
		return fmt.Errorf("weapon %s: infiniteReserve and noReserve are mutually exclusive", kind)
	}
	return nil
}
