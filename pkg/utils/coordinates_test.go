package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorldToScreen(t *testing.T) {
	x, y := WorldToScreen(700, 400, 60, 40)
	assert.Equal(t, 640.0, x)
	assert.Equal(t, 360.0, y)

	wx, wy := ScreenToWorld(x, y, 60, 40)
	assert.Equal(t, 700.0, wx)
	assert.Equal(t, 400.0, wy)

	t.Run("负偏移", func(t *testing.T) {
		x, y := WorldToScreen(0, 0, -640, -360)
		assert.Equal(t, 640.0, x)
		assert.Equal(t, 360.0, y)
	})
}

func TestIsOnScreen(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		want       bool
	}{
		{"完全在屏幕内", 100, 100, 64, 64, true},
		{"跨越左边界", -32, 100, 64, 64, true},
		{"紧贴左边界外", -64, 100, 64, 64, false},
		{"在右侧屏幕外", 1280, 100, 64, 64, false},
		{"跨越右下角", 1270, 710, 64, 64, true},
		{"在上方屏幕外", 100, -100, 64, 64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnScreen(tt.x, tt.y, tt.w, tt.h, 1280, 720))
		})
	}
}
