package freehand

import (
	"fmt"

	"github.com/chewxy/math32"

	"SketchBoard/internal/state"
)

// Easing names accepted in profile tables.
const (
	EaseLinear       = "linear"
	EaseOutQuad      = "ease-out-quad"
	EaseInOutSine    = "ease-in-out-sine"
	EaseOutCubic     = "ease-out-cubic"
	textureSizeRatio = 0.5
)

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

var easings = map[string]func(float32) float32{
	EaseLinear:    Linear,
	EaseOutQuad:   func(t float32) float32 { return t * (2 - t) },
	EaseInOutSine: func(t float32) float32 { return -(math32.Cos(math32.Pi*t) - 1) / 2 },
	EaseOutCubic: func(t float32) float32 {
		u := t - 1
		return u*u*u + 1
	},
}

// Profile is the tunable parameter set of one brush.
type Profile struct {
	Thinning         float32 `yaml:"thinning"`
	Smoothing        float32 `yaml:"smoothing"`
	Streamline       float32 `yaml:"streamline"`
	SizeMultiplier   float32 `yaml:"size_multiplier"`
	Easing           string  `yaml:"easing"`
	SimulatePressure bool    `yaml:"simulate_pressure"`
}

// Validate rejects parameters the tessellator cannot use.
func (p Profile) Validate() error {
	if p.SizeMultiplier <= 0 {
		return fmt.Errorf("size multiplier must be positive, got %v", p.SizeMultiplier)
	}
	if p.Thinning < -1 || p.Thinning > 1 {
		return fmt.Errorf("thinning must be in [-1,1], got %v", p.Thinning)
	}
	if p.Smoothing < 0 || p.Smoothing > 1 {
		return fmt.Errorf("smoothing must be in [0,1], got %v", p.Smoothing)
	}
	if p.Streamline < 0 || p.Streamline > 1 {
		return fmt.Errorf("streamline must be in [0,1], got %v", p.Streamline)
	}
	if _, ok := easings[p.Easing]; !ok {
		return fmt.Errorf("unknown easing %q", p.Easing)
	}
	return nil
}

// Table maps each brush to its profile.
type Table map[state.BrushProfile]Profile

// DefaultTable returns the stock brush profiles.
func DefaultTable() Table {
	return Table{
		state.BrushNormal:  {Thinning: 0.4, Smoothing: 0.5, Streamline: 0.5, SizeMultiplier: 5, Easing: EaseLinear, SimulatePressure: true},
		state.BrushRough:   {Thinning: 0.6, Smoothing: 0.4, Streamline: 0.6, SizeMultiplier: 3, Easing: EaseOutQuad, SimulatePressure: true},
		state.BrushSketchy: {Thinning: 0.5, Smoothing: 0.5, Streamline: 0.5, SizeMultiplier: 4, Easing: EaseInOutSine, SimulatePressure: true},
		state.BrushLaser:   {Thinning: 0.8, Smoothing: 0.6, Streamline: 0.6, SizeMultiplier: 2, Easing: EaseOutCubic, SimulatePressure: true},
	}
}

// Merge returns a copy of t with the entries of over replacing its own.
func (t Table) Merge(over Table) Table {
	out := make(Table, len(t)+len(over))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Profile returns the profile for b, falling back to normal.
func (t Table) Profile(b state.BrushProfile) Profile {
	if p, ok := t[b]; ok {
		return p
	}
	if p, ok := t[state.BrushNormal]; ok {
		return p
	}
	return DefaultTable()[state.BrushNormal]
}

// Options builds tessellation options for a stroke. Pressure is simulated
// only when the profile asks for it and the samples carry no real pressure.
func (t Table) Options(st state.Stroke, complete bool) Options {
	p := t.Profile(st.Brush)
	ease, ok := easings[p.Easing]
	if !ok {
		ease = Linear
	}
	return Options{
		Size:             st.Width * p.SizeMultiplier,
		Thinning:         p.Thinning,
		Smoothing:        p.Smoothing,
		Streamline:       p.Streamline,
		Easing:           ease,
		SimulatePressure: p.SimulatePressure && !HasRealPressure(st.Points),
		Last:             complete,
	}
}

// TextureOptions derives the thinner pass drawn over rough and sketchy
// strokes.
func (t Table) TextureOptions(st state.Stroke, complete bool) Options {
	o := t.Options(st, complete)
	o.Size *= textureSizeRatio
	o.Thinning = math32.Min(1, o.Thinning+0.2)
	o.Smoothing = math32.Max(0, o.Smoothing-0.2)
	return o
}

// HasRealPressure reports whether any sample differs from the default.
func HasRealPressure(points []state.Point) bool {
	for _, p := range points {
		if p.Pressure > 0 && p.Pressure != state.DefaultPressure {
			return true
		}
	}
	return false
}
