package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, MinZoom},
		{0.05, MinZoom},
		{1, 1},
		{3, MaxZoom},
		{10, MaxZoom},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampZoom(tt.in), "zoom %v", tt.in)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	v := Viewport{Zoom: 2, Pan: Vec{X: 30, Y: -10}}
	sx, sy := v.WorldToScreen(5, 7)
	assert.Equal(t, float32(40), sx)
	assert.Equal(t, float32(4), sy)

	wx, wy := v.ScreenToWorld(sx, sy)
	assert.InDelta(t, 5, wx, 1e-5)
	assert.InDelta(t, 7, wy, 1e-5)
}

func TestZeroViewportIsIdentity(t *testing.T) {
	var v Viewport
	x, y := v.ScreenToWorld(12, 34)
	assert.Equal(t, float32(12), x)
	assert.Equal(t, float32(34), y)
	assert.Equal(t, float32(1), v.Scale())
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	v := NewViewport().PanBy(15, 25)
	const cx, cy = 120, 80
	wx, wy := v.ScreenToWorld(cx, cy)

	for range 50 {
		v = v.ZoomAt(cx, cy, ZoomStep)
		x, y := v.ScreenToWorld(cx, cy)
		assert.InDelta(t, wx, x, 1e-3)
		assert.InDelta(t, wy, y, 1e-3)
	}
	assert.Equal(t, MaxZoom, v.Zoom)

	for range 50 {
		v = v.ZoomAt(cx, cy, -ZoomStep)
	}
	assert.InDelta(t, MinZoom, v.Zoom, 1e-6)
	x, y := v.ScreenToWorld(cx, cy)
	assert.InDelta(t, wx, x, 1e-2)
	assert.InDelta(t, wy, y, 1e-2)
}
