package freehand

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/state"
)

func horizontal(n int, step float32) []state.Point {
	pts := make([]state.Point, n)
	for i := range pts {
		pts[i] = state.NewPoint(float32(i)*step, 0, 0)
	}
	return pts
}

func requireWithin(t *testing.T, out []Vec, minX, minY, maxX, maxY float32) {
	t.Helper()
	for _, v := range out {
		require.False(t, math32.IsNaN(v.X) || math32.IsNaN(v.Y), "NaN vertex")
		require.True(t, v.X >= minX && v.X <= maxX && v.Y >= minY && v.Y <= maxY, "vertex %v outside bounds", v)
	}
}

func TestOutlineEmpty(t *testing.T) {
	assert.Nil(t, Outline(nil, Options{Size: 8}))
	assert.Nil(t, Outline(horizontal(5, 10), Options{Size: 0}))
}

func TestOutlineLine(t *testing.T) {
	for name, o := range map[string]Options{
		"simulated": DefaultTable().Options(state.Stroke{Width: 2, Brush: state.BrushNormal, Points: horizontal(20, 10)}, true),
		"constant":  {Size: 10, Streamline: 0.5, Smoothing: 0.5, Last: true},
	} {
		t.Run(name, func(t *testing.T) {
			out := Outline(horizontal(20, 10), o)
			require.Greater(t, len(out), 2*capSteps)
			pad := o.Size + 1
			requireWithin(t, out, -pad, -pad, 190+pad, pad)

			var above, below bool
			for _, v := range out {
				above = above || v.Y < -1
				below = below || v.Y > 1
			}
			assert.True(t, above && below, "outline wraps both sides of the path")
		})
	}
}

func TestOutlineSinglePoint(t *testing.T) {
	out := Outline([]state.Point{state.NewPoint(50, 50, 0)}, Options{Size: 6, Last: true})
	require.NotEmpty(t, out)
	requireWithin(t, out, 50-8, 50-8, 50+8, 50+8)
}

func TestOutlineIncompleteStaysBounded(t *testing.T) {
	pts := []state.Point{
		state.NewPoint(0, 0, 0.2),
		state.NewPoint(30, 40, 0.9),
		state.NewPoint(60, 0, 0.4),
		state.NewPoint(0, 0, 0.7),
	}
	o := DefaultTable().Options(state.Stroke{Width: 3, Brush: state.BrushRough, Points: pts}, false)
	assert.False(t, o.SimulatePressure, "real pressure wins")
	out := Outline(pts, o)
	require.NotEmpty(t, out)
	pad := o.Size + 1
	requireWithin(t, out, -pad, -pad, 60+pad, 40+pad)
}

func TestOutlineDoesNotMutateInput(t *testing.T) {
	pts := horizontal(2, 10)
	before := append([]state.Point(nil), pts...)
	Outline(pts, Options{Size: 4})
	assert.Equal(t, before, pts)
}
