package scenes

import (
	"testing"

	"github.com/decker502/zombieshot/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestAmmoText(t *testing.T) {
	tests := []struct {
		name      string
		ammo      int
		reserve   int
		infinite  bool
		noReserve bool
		want      string
	}{
		{"手枪无限备弹", 12, 0, true, false, "12 / inf"},
		{"步枪", 30, 90, false, false, "30 / 90"},
		{"火箭筒没有备弹", 1, 0, false, true, "1"},
		{"打空", 0, 0, false, false, "0 / 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ammoText(tt.ammo, tt.reserve, tt.infinite, tt.noReserve))
		})
	}
}

func TestWeaponLabels(t *testing.T) {
	for _, kind := range types.AllWeaponKinds() {
		assert.NotEmpty(t, weaponLabel(kind), kind.String())
		assert.LessOrEqual(t, len(weaponShortLabel(kind)), 3)
	}
	assert.Equal(t, "Sho", weaponShortLabel(types.WeaponShotgun))
	assert.Equal(t, "Rocket", weaponLabel(types.WeaponRocketLauncher))
}

func TestTileColor(t *testing.T) {
	assert.Equal(t, tilePalette[0], tileColor(0))
	assert.Equal(t, tilePalette[5], tileColor(5))
	assert.Equal(t, tilePalette[1], tileColor(len(tilePalette)+1), "超出调色板时循环取色")
}

func TestZombieColorsCoverAllKinds(t *testing.T) {
	for k := 0; k < types.ZombieKindCount; k++ {
		_, ok := zombieColors[types.ZombieKind(k)]
		assert.True(t, ok, types.ZombieKind(k).String())
	}
}
