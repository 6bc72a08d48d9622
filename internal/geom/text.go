package geom

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"SketchBoard/internal/state"
)

// FontScale converts a shape width into a font size in world units.
const FontScale = 10

var (
	fontOnce sync.Once
	regular  *opentype.Font
	fontErr  error
)

// regularFont parses Go Regular once.
func regularFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	return regular, fontErr
}

// FontSize returns the text size used for a shape of the given width.
func FontSize(width float32) float32 {
	return width * FontScale
}

// TextMetrics measures a single line of s at size: advance width, ascent
// and descent, all positive. Unmeasurable input yields zeros.
func TextMetrics(s string, size float32) (width, ascent, descent float32) {
	if s == "" || size <= 0 {
		return 0, 0, 0
	}
	f, err := regularFont()
	if err != nil {
		return 0, 0, 0
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return 0, 0, 0
	}
	defer face.Close()
	m := face.Metrics()
	return fixedToFloat(font.MeasureString(face, s)), fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// NaturalTextRect is the unscaled box of a text shape anchored at its start
// point.
func NaturalTextRect(sh state.Shape) Rect {
	w, a, d := TextMetrics(sh.Text, FontSize(sh.Width))
	return Rect{X: sh.Start.X, Y: sh.Start.Y, W: w, H: a + d}
}

// NewTextShape fills in the anchor box of a fresh text shape so that it
// matches the natural extent of its glyphs.
func NewTextShape(at state.Point, text, color string, width float32) state.Shape {
	sh := state.Shape{
		Kind:  state.ShapeText,
		Start: at,
		End:   at,
		Color: color,
		Width: width,
		Text:  text,
	}
	r := NaturalTextRect(sh)
	sh.End = state.Point{X: r.MaxX(), Y: r.MaxY(), Pressure: at.Pressure}
	return sh
}

// TextScale returns the anisotropic factors that stretch the natural text
// box onto the anchor box. Unresized or degenerate boxes yield (1, 1).
func TextScale(sh state.Shape) (sx, sy float32) {
	natural := NaturalTextRect(sh)
	anchor := RectFromPoints(sh.Start, sh.End)
	if natural.Empty() || anchor.Empty() {
		return 1, 1
	}
	return anchor.W / natural.W, anchor.H / natural.H
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
