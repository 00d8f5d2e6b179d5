package game

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSilentWav 生成指定时长的 16 位双声道静音 WAV
func writeSilentWav(t *testing.T, ms int) string {
	t.Helper()
	dataLen := uint32(AudioSampleRate * 4 * ms / 1000)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint32(AudioSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(AudioSampleRate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(make([]byte, dataLen))

	path := filepath.Join(t.TempDir(), "reload.wav")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestAudioManagerDegraded(t *testing.T) {
	am := NewAudioManager(nil, nil, 1)
	defer am.Close()

	t.Run("无音频上下文时不播放", func(t *testing.T) {
		assert.False(t, am.PlaySound("sound/shot.wav"))
		assert.False(t, am.PlayMusic("music/track.ogg"))
	})

	t.Run("降级模式下仍可计算时长", func(t *testing.T) {
		path := writeSilentWav(t, 1500)
		ms, ok := am.SoundDurationMs(path)
		require.True(t, ok)
		assert.Equal(t, int64(1500), ms)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, ok := am.SoundDurationMs(filepath.Join(t.TempDir(), "missing.wav"))
		assert.False(t, ok)
	})

	t.Run("不支持的格式", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clip.mp3")
		require.NoError(t, os.WriteFile(path, []byte("ID3"), 0644))
		_, ok := am.SoundDurationMs(path)
		assert.False(t, ok)
	})
}

func TestAudioManagerClose(t *testing.T) {
	am := NewAudioManager(nil, nil, 1)
	require.True(t, am.enqueue(audioRequest{path: filepath.Join(t.TempDir(), "missing.wav")}))

	am.Close()
	assert.NotPanics(t, am.Close, "重复关闭")
	assert.NotPanics(t, func() {
		assert.False(t, am.enqueue(audioRequest{path: "sound/shot.wav"}), "关闭后拒绝请求")
		assert.False(t, am.PlaySound("sound/shot.wav"))
		assert.False(t, am.PlayMusic("music/track.ogg"))
	})
}

func TestPickTrack(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	playlist := []string{"a.ogg", "b.ogg", "c.ogg"}

	t.Run("不重复当前曲目", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.NotEqual(t, "b.ogg", pickTrack(rng, playlist, "b.ogg"))
		}
	})

	t.Run("只有一首时返回该曲目", func(t *testing.T) {
		assert.Equal(t, "a.ogg", pickTrack(rng, []string{"a.ogg"}, "a.ogg"))
	})

	t.Run("空列表", func(t *testing.T) {
		am := NewAudioManager(nil, nil, 1)
		defer am.Close()
		assert.Empty(t, am.PlayRandomMusic(nil))
	})
}
