package config

// DefaultGameConfig 返回内置默认配置
// 配置文件中缺失的字段会保留这里的值
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			ScreenWidth:         1280,
			ScreenHeight:        720,
			TicksPerSecond:      60,
			TileSize:            64,
			TileVariants:        6,
			ObstacleVariants:    []int{4, 5},
			FloorChance:         0.72,
			EvictRadiusCells:    0,
			EvictIntervalTicks:  300,
			SpawnSafeDistance:   200,
			SpawnMaxAttempts:    64,
			RecenterRadiusCells: 25,
		},
		Player: PlayerConfig{
			Width:         64,
			Height:        64,
			MaxHealth:     100,
			Speed:         5,
			MuzzleOffset:  50,
			WalkFrameMs:   100,
			WalkFrames:    4,
			CharacterMax:  4,
			FlashDuration: 150,
		},
		Bullet: BulletConfig{
			Speed:          20,
			Size:           32,
			RocketSize:     64,
			AcidSize:       24,
			AcidSpeedRatio: 0.5,
		},
		Weapons: map[string]WeaponStats{
			"pistol": {
				ShotsPerMinute: 1200, Damage: 20, ClipSize: 12, InfiniteReserve: true,
				Pellets: 1, ReloadMs: 1500,
				FireSound: "assets/audio/pistol_fire.wav", ReloadSound: "assets/audio/pistol_reload.wav",
			},
			"rifle": {
				ShotsPerMinute: 600, Damage: 30, ClipSize: 30, Reserve: 90, ShootingAngle: 30,
				Pellets: 1, ReloadMs: 2000,
				FireSound: "assets/audio/rifle_fire.wav", ReloadSound: "assets/audio/rifle_reload.wav",
			},
			"shotgun": {
				ShotsPerMinute: 60, Damage: 30, ClipSize: 5, Reserve: 15,
				Pellets: 9, PelletSpacing: 5, ReloadMs: 2500,
				FireSound: "assets/audio/shotgun_fire.wav", ReloadSound: "assets/audio/shotgun_reload.wav",
			},
			"sniper": {
				ShotsPerMinute: 30, Damage: 60, ClipSize: 5, Reserve: 20,
				Pellets: 1, Pierce: true, ReloadMs: 2500,
				FireSound: "assets/audio/sniper_fire.wav", ReloadSound: "assets/audio/sniper_reload.wav",
			},
			"rocket_launcher": {
				ShotsPerMinute: 10, Damage: 80, ClipSize: 5, StartClip: 1, NoReserve: true,
				Pellets: 1, BlastRadius: 200, ReloadMs: 2000,
				FireSound: "assets/audio/rocket_fire.wav", HitSound: "assets/audio/explosion.wav",
			},
		},
		Zombies: map[string]ZombieStats{
			"normal": {
				Health: 100, Speed: 1, Damage: 10, Score: 50,
				Width: 96, Height: 96, AttackRange: 80, AttacksPerMinute: 60,
			},
			"reptile": {
				Health: 50, Speed: 2, Damage: 10, Score: 75,
				Width: 96, Height: 96, AttackRange: 80, AttacksPerMinute: 60,
				JumpCooldownMs: 3000, JumpRange: 300, JumpSpeed: 10, JumpTrigger: 400,
			},
			"tank": {
				Health: 300, Speed: 0.6, Damage: 25, Score: 100,
				Width: 96, Height: 96, AttackRange: 80, AttacksPerMinute: 60,
			},
			"acidic": {
				Health: 50, Speed: 0.5, Damage: 10, Score: 150,
				Width: 96, Height: 96, AttackRange: 400, AttacksPerMinute: 60,
				BlastRadius: 300,
			},
		},
		Difficulties: map[string]DifficultyStats{
			"normal": {SpawnIntervalMs: 400, ZombiesPerWave: 10, IncreasePercent: 50, SpeedMultiplier: 1.0, AmmoDropMultiplier: 1},
			"hard":   {SpawnIntervalMs: 200, ZombiesPerWave: 15, IncreasePercent: 75, SpeedMultiplier: 1.3, AmmoDropMultiplier: 2},
		},
		Drops: DropConfig{
			HealthChance:   0.01,
			AmmoChance:     0.3,
			HealthMin:      20,
			HealthMax:      40,
			HealthSize:     64,
			AmmoSize:       48,
			AmmoVariance:   0.3,
			HealthVariants: 3,
		},
		Explosion: ExplosionConfig{
			SizeFactor: 1.5,
			FrameMs:    50,
			Frames:     8,
		},
		Audio: AudioConfig{
			Playlist: []string{
				"assets/audio/music_01.ogg",
				"assets/audio/music_02.ogg",
				"assets/audio/music_03.ogg",
			},
			HurtSound:   "assets/audio/hurt.wav",
			PickupSound: "assets/audio/pickup.wav",
		},
	}
}
