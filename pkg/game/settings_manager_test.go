package game

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: "zombieshot_test"})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 0.7, s.MusicVolume)
	assert.Equal(t, 0.8, s.SoundVolume)
	assert.True(t, s.MusicEnabled)
	assert.True(t, s.SoundEnabled)
	assert.False(t, s.Fullscreen)
	assert.Equal(t, "normal", s.Difficulty)
	assert.Equal(t, 1, s.CharacterID)
}

func TestSettingsManager(t *testing.T) {
	t.Run("无 gdata 时使用默认值", func(t *testing.T) {
		sm := NewSettingsManager(nil)
		assert.Equal(t, 0.7, sm.GetSettings().MusicVolume)
		assert.NoError(t, sm.Save())
	})

	t.Run("音量限制在 0 到 1", func(t *testing.T) {
		sm := NewSettingsManager(nil)
		sm.SetMusicVolume(1.5)
		sm.SetSoundVolume(-0.2)
		assert.Equal(t, 1.0, sm.GetSettings().MusicVolume)
		assert.Equal(t, 0.0, sm.GetSettings().SoundVolume)
	})

	t.Run("保存后重新加载", func(t *testing.T) {
		m := openTestGdata(t)
		sm := NewSettingsManager(m)
		sm.SetMusicVolume(0.3)
		sm.SetSoundEnabled(false)
		sm.SetLastSelection(types.DifficultyHard, 3)
		require.NoError(t, sm.Save())

		reloaded := NewSettingsManager(m)
		s := reloaded.GetSettings()
		assert.Equal(t, 0.3, s.MusicVolume)
		assert.False(t, s.SoundEnabled)
		assert.Equal(t, types.DifficultyHard, reloaded.LastDifficulty())
		assert.Equal(t, 3, s.CharacterID)
	})

	t.Run("无法识别的难度回退普通", func(t *testing.T) {
		sm := NewSettingsManager(nil)
		sm.GetSettings().Difficulty = "nightmare"
		assert.Equal(t, types.DifficultyNormal, sm.LastDifficulty())
	})
}
