package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sasha-s/go-deadlock"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 44100

// bytesPerSecond 解码后 16 位双声道 PCM 每秒字节数
const bytesPerSecond = AudioSampleRate * 4

// audioRequest 播放请求，由后台 worker 执行
type audioRequest struct {
	path  string
	music bool
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理所有音效和背景音乐的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 计算音效时长（武器换弹时间）
//
// 播放请求通过通道交给后台 goroutine 处理，调用方不会因解码文件而阻塞 tick。
// PCM 缓存由 worker 与调用方共享，使用 deadlock.Mutex 保护。
type AudioManager struct {
	context         *audio.Context   // 为 nil 时处于降级模式（不发声）
	settingsManager *SettingsManager // 可为 nil

	mutex        deadlock.Mutex
	pcmCache     map[string][]byte        // 路径 -> 解码后的 PCM
	soundPlayers map[string]*audio.Player // 路径 -> 音效播放器
	currentMusic *audio.Player
	musicPath    string

	requests chan audioRequest
	done     chan struct{}
	closed   bool // 受 mutex 保护，关闭后拒绝新的播放请求
	rng      *rand.Rand
}

// NewAudioManager 创建新的音频管理器并启动播放 worker
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（降级模式，只计算时长不播放）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//   - seed: 随机选曲的种子
//
// 返回：
//   - *AudioManager: 音频管理器实例，使用完毕需调用 Close
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, seed int64) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcmCache:        make(map[string][]byte),
		soundPlayers:    make(map[string]*audio.Player),
		requests:        make(chan audioRequest, 64),
		done:            make(chan struct{}),
		rng:             rand.New(rand.NewSource(seed)),
	}
	go am.run()
	return am
}

// run 后台 worker：依次执行播放请求
func (am *AudioManager) run() {
	defer close(am.done)
	for req := range am.requests {
		if req.music {
			am.startMusic(req.path)
		} else {
			am.startSound(req.path)
		}
	}
}

// Close 停止 worker 并等待其退出，重复调用无副作用
func (am *AudioManager) Close() {
	am.mutex.Lock()
	if am.closed {
		am.mutex.Unlock()
		return
	}
	am.closed = true
	close(am.requests)
	am.mutex.Unlock()

	<-am.done
	am.StopMusic()
}

// enqueue 非阻塞地提交播放请求，已关闭或队列已满时丢弃
// 发送在持锁状态下进行，与 Close 互斥
func (am *AudioManager) enqueue(req audioRequest) bool {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.closed {
		return false
	}
	select {
	case am.requests <- req:
		return true
	default:
		return false
	}
}

// PlaySound 播放音效（发出即忘）
//
// 参数：
//   - path: 音效文件路径（.wav 或 .ogg）
//
// 返回：
//   - bool: 请求是否被接受
func (am *AudioManager) PlaySound(path string) bool {
	if am.context == nil || path == "" {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	return am.enqueue(audioRequest{path: path})
}

// PlayMusic 播放背景音乐（循环），同一时间只播放一首
func (am *AudioManager) PlayMusic(path string) bool {
	if am.context == nil || path == "" {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}
	return am.enqueue(audioRequest{path: path, music: true})
}

// PlayRandomMusic 从播放列表随机选一首播放，尽量避开当前曲目
// 返回选中的曲目路径，列表为空时返回空字符串
func (am *AudioManager) PlayRandomMusic(playlist []string) string {
	if len(playlist) == 0 {
		return ""
	}
	am.mutex.Lock()
	current := am.musicPath
	am.mutex.Unlock()

	track := pickTrack(am.rng, playlist, current)
	am.PlayMusic(track)
	return track
}

// pickTrack 随机选曲，列表中有其他曲目时不重复当前曲目
func pickTrack(rng *rand.Rand, playlist []string, current string) string {
	candidates := make([]string, 0, len(playlist))
	for _, p := range playlist {
		if p != current {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return playlist[0]
	}
	return candidates[rng.Intn(len(candidates))]
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.musicPath = ""
	}
}

// PauseMusic 暂停当前背景音乐
func (am *AudioManager) PauseMusic() {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前背景音乐
func (am *AudioManager) ResumeMusic() {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.currentMusic != nil {
		am.currentMusic.Play()
	}
}

// ApplySettings 把 SettingsManager 中的音量应用到正在播放的音频
func (am *AudioManager) ApplySettings() {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.getMusicVolume())
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.getSoundVolume())
	}
}

// SoundDurationMs 返回音效时长（毫秒）
// 不依赖音频上下文，降级模式下同样可用
func (am *AudioManager) SoundDurationMs(path string) (int64, bool) {
	if path == "" {
		return 0, false
	}
	pcm, err := am.loadPCM(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: cannot measure %s: %v", path, err)
		return 0, false
	}
	return int64(len(pcm)) * 1000 / bytesPerSecond, true
}

// startSound 在 worker 中播放音效
func (am *AudioManager) startSound(path string) {
	am.mutex.Lock()
	player, ok := am.soundPlayers[path]
	am.mutex.Unlock()

	if !ok {
		pcm, err := am.loadPCM(path)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", path, err)
			return
		}
		player = am.context.NewPlayerFromBytes(pcm)
		am.mutex.Lock()
		am.soundPlayers[path] = player
		am.mutex.Unlock()
	}

	am.mutex.Lock()
	player.SetVolume(am.getSoundVolume())
	am.mutex.Unlock()

	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", path, err)
	}
	player.Play()
}

// startMusic 在 worker 中切换背景音乐
func (am *AudioManager) startMusic(path string) {
	am.mutex.Lock()
	if am.musicPath == path && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		am.mutex.Unlock()
		return
	}
	am.mutex.Unlock()

	pcm, err := am.loadPCM(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load music %s: %v", path, err)
		return
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := am.context.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player %s: %v", path, err)
		return
	}

	am.mutex.Lock()
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
	volume := am.getMusicVolume()
	player.SetVolume(volume)
	player.Play()
	am.currentMusic = player
	am.musicPath = path
	am.mutex.Unlock()

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", path, volume)
}

// loadPCM 读取并解码音频文件，结果缓存
func (am *AudioManager) loadPCM(path string) ([]byte, error) {
	am.mutex.Lock()
	if pcm, ok := am.pcmCache[path]; ok {
		am.mutex.Unlock()
		return pcm, nil
	}
	am.mutex.Unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	pcm, err := decodePCM(path, raw)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.pcmCache[path] = pcm
	am.mutex.Unlock()
	return pcm, nil
}

// decodePCM 按扩展名解码为 16 位双声道 PCM
func decodePCM(path string, raw []byte) ([]byte, error) {
	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(AudioSampleRate, bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(AudioSampleRate, bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
	}
	return pcm, nil
}

// getMusicVolume 获取音乐音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7 // 默认值
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
