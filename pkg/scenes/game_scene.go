package scenes

import (
	"log"

	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/simulation"
	"github.com/decker502/zombieshot/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// 非模拟按键（存档、重开、切换难度、音乐），不经过 InputState
const (
	KeySave       = ebiten.KeyF5
	KeyLoad       = ebiten.KeyF9
	KeyDifficulty = ebiten.KeyF2
	KeyRestart    = ebiten.KeyEnter
	KeyMusic      = ebiten.KeyM
	KeyNextTrack  = ebiten.KeyN
)

// statusMessageTicks 状态提示（已存档、已读档等）的显示时长
const statusMessageTicks = 120

// GameScene 游戏主场景
//
// 每个 tick 把键盘和鼠标状态转换为 InputState 交给 Simulation，
// 绘制时只读取模拟状态，不修改任何组件。
type GameScene struct {
	sim      *simulation.Simulation
	audio    *game.AudioManager    // 可为 nil（静音）
	settings *game.SettingsManager // 可为 nil（设置不持久化）
	playlist []string

	face text.Face

	wasPaused     bool
	status        string
	statusTimeout int
}

// NewGameScene 创建游戏场景
//
// 参数：
//   - sim: 模拟驱动
//   - audio: 音频管理器，可为 nil
//   - settings: 设置管理器，可为 nil
//   - playlist: 背景音乐列表
func NewGameScene(sim *simulation.Simulation, audio *game.AudioManager, settings *game.SettingsManager, playlist []string) *GameScene {
	gs := &GameScene{
		sim:      sim,
		audio:    audio,
		settings: settings,
		playlist: playlist,
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
	if audio != nil {
		audio.PlayRandomMusic(playlist)
	}
	return gs
}

// Update 处理非模拟按键，然后推进一个 tick
func (gs *GameScene) Update(deltaTime float64) error {
	gs.handleMetaKeys()
	gs.sim.Tick(gs.pollInput())
	gs.syncMusicWithPause()

	if gs.statusTimeout > 0 {
		gs.statusTimeout--
	}
	return nil
}

// handleMetaKeys 处理存档、读档、重开、难度和音乐按键
func (gs *GameScene) handleMetaKeys() {
	state := gs.sim.GameState()

	if inpututil.IsKeyJustPressed(KeySave) && !state.IsGameOver {
		if gs.sim.SaveGame() {
			gs.showStatus("Game saved")
		} else {
			gs.showStatus("Save failed")
		}
	}
	if inpututil.IsKeyJustPressed(KeyLoad) {
		if gs.sim.LoadGame() {
			gs.showStatus("Game loaded")
		} else {
			gs.showStatus("No save to load")
		}
	}
	if inpututil.IsKeyJustPressed(KeyRestart) && state.IsGameOver {
		if err := gs.sim.Restart(); err != nil {
			log.Printf("[GameScene] ERROR: Failed to restart: %v", err)
			return
		}
		gs.showStatus("New game")
	}
	if inpututil.IsKeyJustPressed(KeyDifficulty) {
		next := types.DifficultyHard
		if state.Difficulty == types.DifficultyHard {
			next = types.DifficultyNormal
		}
		gs.sim.SetDifficulty(next)
		gs.rememberSelection()
		gs.showStatus("Difficulty: " + next.String())
	}
	if inpututil.IsKeyJustPressed(KeyMusic) {
		gs.toggleMusic()
	}
	if inpututil.IsKeyJustPressed(KeyNextTrack) && gs.audio != nil {
		gs.audio.PlayRandomMusic(gs.playlist)
	}
}

// toggleMusic 切换背景音乐开关并保存设置
func (gs *GameScene) toggleMusic() {
	if gs.settings == nil || gs.audio == nil {
		return
	}
	enabled := !gs.settings.GetSettings().MusicEnabled
	gs.settings.SetMusicEnabled(enabled)
	if enabled {
		gs.audio.PlayRandomMusic(gs.playlist)
		gs.showStatus("Music on")
	} else {
		gs.audio.StopMusic()
		gs.showStatus("Music off")
	}
	if err := gs.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: %v", err)
	}
}

// syncMusicWithPause 暂停时背景音乐一起暂停
func (gs *GameScene) syncMusicWithPause() {
	paused := gs.sim.GameState().IsPaused
	if paused == gs.wasPaused {
		return
	}
	gs.wasPaused = paused
	if gs.audio == nil {
		return
	}
	if paused {
		gs.audio.PauseMusic()
	} else {
		gs.audio.ResumeMusic()
	}
}

// rememberSelection 记录当前难度和角色，下次启动时作为默认值
func (gs *GameScene) rememberSelection() {
	if gs.settings == nil {
		return
	}
	state := gs.sim.GameState()
	gs.settings.SetLastSelection(state.Difficulty, state.CharacterID)
	if err := gs.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: %v", err)
	}
}

func (gs *GameScene) showStatus(msg string) {
	gs.status = msg
	gs.statusTimeout = statusMessageTicks
}

// Draw 绘制地图、实体和界面
func (gs *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	gs.drawTiles(screen)
	gs.drawDrops(screen)
	gs.drawZombies(screen)
	gs.drawPlayer(screen)
	gs.drawBullets(screen)
	gs.drawExplosions(screen)
	gs.drawHUD(screen)

	switch {
	case gs.sim.GameState().IsGameOver:
		gs.drawGameOver(screen)
	case gs.sim.GameState().IsPaused:
		gs.drawPaused(screen)
	}
	if gs.settings != nil && gs.settings.GetSettings().ShowFPS {
		gs.drawDebugInfo(screen)
	}
}
