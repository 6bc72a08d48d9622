package freehand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SketchBoard/internal/state"
)

func TestDefaultTableValid(t *testing.T) {
	table := DefaultTable()
	for _, b := range state.Brushes {
		p, ok := table[b]
		assert.True(t, ok, "missing profile for %s", b)
		assert.NoError(t, p.Validate(), b)
	}
}

func TestProfileValidate(t *testing.T) {
	base := DefaultTable()[state.BrushNormal]
	tests := []struct {
		name string
		edit func(*Profile)
	}{
		{"size", func(p *Profile) { p.SizeMultiplier = 0 }},
		{"thinning", func(p *Profile) { p.Thinning = 1.5 }},
		{"smoothing", func(p *Profile) { p.Smoothing = -0.1 }},
		{"streamline", func(p *Profile) { p.Streamline = 2 }},
		{"easing", func(p *Profile) { p.Easing = "bounce" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.edit(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestTableMergeAndFallback(t *testing.T) {
	over := Table{state.BrushLaser: {SizeMultiplier: 9, Easing: EaseLinear}}
	merged := DefaultTable().Merge(over)
	assert.Equal(t, float32(9), merged.Profile(state.BrushLaser).SizeMultiplier)
	assert.Equal(t, DefaultTable()[state.BrushRough], merged.Profile(state.BrushRough))
	assert.Equal(t, float32(5), DefaultTable()[state.BrushNormal].SizeMultiplier, "merge leaves the source alone")

	assert.Equal(t, DefaultTable()[state.BrushNormal], Table{}.Profile("chalk"))
	assert.Equal(t, merged[state.BrushNormal], merged.Profile("chalk"))
}

func TestOptions(t *testing.T) {
	st := state.Stroke{Width: 2, Brush: state.BrushSketchy, Points: horizontal(3, 5)}
	o := DefaultTable().Options(st, true)
	assert.Equal(t, float32(8), o.Size)
	assert.True(t, o.SimulatePressure)
	assert.True(t, o.Last)
	assert.InDelta(t, 0.5, o.Easing(0.5), 1e-6)

	tex := DefaultTable().TextureOptions(st, true)
	assert.Equal(t, float32(4), tex.Size)
	assert.InDelta(t, 0.7, tex.Thinning, 1e-6)
	assert.InDelta(t, 0.3, tex.Smoothing, 1e-6)
}

func TestHasRealPressure(t *testing.T) {
	assert.False(t, HasRealPressure(horizontal(4, 1)))
	assert.True(t, HasRealPressure([]state.Point{state.NewPoint(0, 0, 0.3)}))
}
