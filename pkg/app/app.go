// Package app 提供游戏应用的核心包装器
//
// 该包把配置加载、存储、音频和模拟的组装从 main 包中提取出来，
// main.go 只负责解析命令行参数和启动 ebiten。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/decker502/zombieshot/pkg/scenes"
	"github.com/decker502/zombieshot/pkg/simulation"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 数据目录名
const AppName = "zombieshot"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径（以 data/ 开头时优先读取内嵌文件）
	ConfigPath string
	// Difficulty 难度名称，为空时使用上次的选择
	Difficulty string
	// CharacterID 角色编号，<= 0 时使用上次的选择
	CharacterID int
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// StoreBackend 存档后端："gdata"、"postgres" 或 "memory"
	StoreBackend string
	// DSN PostgreSQL 连接串
	DSN string
	// TicksPerSecond 覆盖配置中的每秒 tick 数，<= 0 时使用配置值
	TicksPerSecond int
	// NoAudio 不创建音频上下文
	NoAudio bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    scenes.Scene
	settings *game.SettingsManager
	audio    *game.AudioManager
	store    persistence.Store

	screenWidth  int
	screenHeight int
	deltaTime    float64
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	if cfg.TicksPerSecond > 0 {
		gameConfig.World.TicksPerSecond = cfg.TicksPerSecond
	}
	log.Printf("[Config] 加载游戏配置: %s (%dx%d, %d TPS)", cfg.ConfigPath,
		gameConfig.World.ScreenWidth, gameConfig.World.ScreenHeight, gameConfig.World.TicksPerSecond)

	// 设置始终保存在本地 gdata 目录，打开失败时只在内存中保存
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	difficulty, characterID, err := resolveSelection(cfg, settings, gameConfig.Player.CharacterMax)
	if err != nil {
		return nil, err
	}
	settings.SetLastSelection(difficulty, characterID)
	if err := settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	store, err := openStore(cfg, gdataManager)
	if err != nil {
		return nil, fmt.Errorf("存储初始化失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var audioContext *audio.Context
	if !cfg.NoAudio {
		audioContext = audio.NewContext(game.AudioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settings, seed)
	log.Printf("[App] AudioManager initialized (enabled=%v)", audioContext != nil)

	sim, err := simulation.New(simulation.Options{
		Config:      gameConfig,
		Difficulty:  difficulty,
		CharacterID: characterID,
		Seed:        seed,
		Sound:       audioManager,
		Store:       store,
	})
	if err != nil {
		audioManager.Close()
		store.Close()
		return nil, fmt.Errorf("模拟初始化失败: %w", err)
	}

	ebiten.SetTPS(gameConfig.World.TicksPerSecond)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	return &App{
		scene:        scenes.NewGameScene(sim, audioManager, settings, gameConfig.Audio.Playlist),
		settings:     settings,
		audio:        audioManager,
		store:        store,
		screenWidth:  gameConfig.World.ScreenWidth,
		screenHeight: gameConfig.World.ScreenHeight,
		deltaTime:    1 / float64(gameConfig.World.TicksPerSecond),
		verbose:      cfg.Verbose,
	}, nil
}

// resolveSelection 命令行参数优先，未指定时使用上次保存的难度和角色
func resolveSelection(cfg Config, settings *game.SettingsManager, characterMax int) (types.Difficulty, int, error) {
	difficulty := settings.LastDifficulty()
	if cfg.Difficulty != "" {
		d, ok := types.DifficultyFromString(cfg.Difficulty)
		if !ok {
			return 0, 0, fmt.Errorf("未知难度: %q", cfg.Difficulty)
		}
		difficulty = d
	}

	characterID := settings.GetSettings().CharacterID
	if cfg.CharacterID > 0 {
		characterID = cfg.CharacterID
	}
	if characterMax > 0 && characterID > characterMax {
		return 0, 0, fmt.Errorf("角色编号 %d 超出范围 1~%d", characterID, characterMax)
	}
	return difficulty, max(1, characterID), nil
}

// openStore 打开存档后端，gdata 后端与设置共用同一个 Manager
func openStore(cfg Config, gdataManager *gdata.Manager) (persistence.Store, error) {
	backend := cfg.StoreBackend
	if (backend == "" || backend == persistence.BackendGdata) && gdataManager != nil {
		return persistence.NewGdataStoreFromManager(gdataManager), nil
	}
	return persistence.Open(backend, AppName, cfg.DSN)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.screenWidth, a.screenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	return a.scene.Update(a.deltaTime)
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	a.settings.GetSettings().Fullscreen = fullscreen
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色，画面使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}

// ScreenSize 逻辑屏幕尺寸，用于设置窗口大小
func (a *App) ScreenSize() (int, int) {
	return a.screenWidth, a.screenHeight
}

// Close 停止音频并关闭存储
func (a *App) Close() error {
	a.audio.Close()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	return a.store.Close()
}
