package game

// SoundPlayer 音频协作者接口
// 模拟核心只依赖这组"发出即忘"的调用
type SoundPlayer interface {
	// PlaySound 播放音效，返回是否成功
	PlaySound(path string) bool
	// PlayMusic 播放背景音乐，返回是否成功
	PlayMusic(path string) bool
	// SoundDurationMs 返回音效时长（毫秒），用于推导换弹时间
	SoundDurationMs(path string) (int64, bool)
}

// NopSoundPlayer 不发声的实现（测试、无音频设备时使用）
type NopSoundPlayer struct{}

// PlaySound 总是返回 false
func (NopSoundPlayer) PlaySound(string) bool { return false }

// PlayMusic 总是返回 false
func (NopSoundPlayer) PlayMusic(string) bool { return false }

// SoundDurationMs 总是未知
func (NopSoundPlayer) SoundDurationMs(string) (int64, bool) { return 0, false }
