// validate_config 校验游戏配置文件
//
// 用法：
//
//	go run ./cmd/validate_config -config data/game_config.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/types"
)

var configPath = flag.String("config", "data/game_config.yaml", "游戏配置文件路径")

func main() {
	flag.Parse()

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确，校验通过: %s\n", *configPath)
	fmt.Printf("✅ 屏幕 %dx%d，%d TPS，瓦片 %dpx\n",
		cfg.World.ScreenWidth, cfg.World.ScreenHeight, cfg.World.TicksPerSecond, cfg.World.TileSize)

	for _, kind := range types.AllWeaponKinds() {
		w, _ := cfg.Weapon(kind)
		fmt.Printf("   武器 %-16s 伤害 %3d  射击间隔 %4dms  弹匣 %2d  备弹 %3d\n",
			kind, w.Damage, w.FireDelayMs(), w.ClipSize, w.Reserve)
	}
	for k := 0; k < types.ZombieKindCount; k++ {
		kind := types.ZombieKind(k)
		z, _ := cfg.Zombie(kind)
		fmt.Printf("   僵尸 %-8s 血量 %3d  速度 %.1f  伤害 %2d  分数 %3d\n",
			kind, z.Health, z.Speed, z.Damage, z.Score)
	}
	for _, d := range []types.Difficulty{types.DifficultyNormal, types.DifficultyHard} {
		stats := cfg.Difficulty(d)
		fmt.Printf("   难度 %-6s 刷怪间隔 %3dms  每波 %2d  增长 %2d%%  速度 x%.2f\n",
			d, stats.SpawnIntervalMs, stats.ZombiesPerWave, stats.IncreasePercent, stats.SpeedMultiplier)
	}
}
