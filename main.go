package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/zombieshot/pkg/app"
	"github.com/decker502/zombieshot/pkg/embedded"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	configPath  = flag.String("config", "data/game_config.yaml", "游戏配置文件路径")
	difficulty  = flag.String("difficulty", "", "难度：normal 或 hard（默认使用上次的选择）")
	characterID = flag.Int("character", 0, "角色编号，从 1 开始（默认使用上次的选择）")
	seed        = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	storeName   = flag.String("store", persistence.BackendGdata, "存档后端：gdata、postgres 或 memory")
	dsn         = flag.String("dsn", "", "PostgreSQL 连接串（-store postgres 时使用）")
	tps         = flag.Int("tps", 0, "覆盖配置中的每秒 tick 数")
	noAudio     = flag.Bool("no-audio", false, "关闭声音")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		ConfigPath:     *configPath,
		Difficulty:     *difficulty,
		CharacterID:    *characterID,
		Seed:           *seed,
		StoreBackend:   *storeName,
		DSN:            *dsn,
		TicksPerSecond: *tps,
		NoAudio:        *noAudio,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	width, height := gameApp.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("ZombieShot")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	if err := gameApp.Close(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
