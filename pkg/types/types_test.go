package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeaponKindStrings(t *testing.T) {
	for _, k := range AllWeaponKinds() {
		parsed, ok := WeaponKindFromString(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}

	k, ok := WeaponKindFromString("rocket")
	assert.True(t, ok)
	assert.Equal(t, WeaponRocketLauncher, k)

	_, ok = WeaponKindFromString("laser")
	assert.False(t, ok)
	assert.Equal(t, "unknown", WeaponKind(42).String())
	assert.False(t, WeaponKind(-1).Valid())
	assert.False(t, WeaponKind(WeaponKindCount).Valid())
}

func TestZombieKind(t *testing.T) {
	t.Run("字符串与别名", func(t *testing.T) {
		k, ok := ZombieKindFromString("leaper")
		assert.True(t, ok)
		assert.Equal(t, ZombieReptile, k)
		assert.Equal(t, "tank", ZombieTank.String())
	})

	t.Run("能力表", func(t *testing.T) {
		assert.True(t, ZombieAcidic.IsRanged())
		assert.True(t, ZombieAcidic.ExplodesOnDeath())
		assert.False(t, ZombieTank.IsRanged())
		assert.False(t, ZombieNormal.ExplodesOnDeath())
	})

	assert.Equal(t, 4, ZombieKindCount)
}

func TestDifficultyFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"normal", DifficultyNormal, true},
		{"HARD", DifficultyHard, true},
		{" hard ", DifficultyHard, true},
		{"", DifficultyNormal, true},
		{"nightmare", DifficultyNormal, false},
	}
	for _, tt := range tests {
		got, ok := DifficultyFromString(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
