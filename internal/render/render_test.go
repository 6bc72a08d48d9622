package render

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/state"
)

// recorder logs every Surface call as a line of text.
type recorder struct {
	w, h  int
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Width() int                       { return r.w }
func (r *recorder) Height() int                      { return r.h }
func (r *recorder) Push()                            { r.add("push") }
func (r *recorder) Pop()                             { r.add("pop") }
func (r *recorder) Identity()                        { r.add("identity") }
func (r *recorder) Translate(x, y float64)           { r.add("translate %.2f %.2f", x, y) }
func (r *recorder) Scale(x, y float64)               { r.add("scale %.2f %.2f", x, y) }
func (r *recorder) SetColor(c color.Color)           { r.add("color %v", c) }
func (r *recorder) SetLineWidth(w float64)           { r.add("width %.2f", w) }
func (r *recorder) SetLineCap(gg.LineCap)            {}
func (r *recorder) SetLineJoin(gg.LineJoin)          {}
func (r *recorder) SetDash(l ...float64)             { r.add("dash %v", l) }
func (r *recorder) ClearDash()                       { r.add("nodash") }
func (r *recorder) MoveTo(x, y float64)              { r.add("move %.2f %.2f", x, y) }
func (r *recorder) LineTo(x, y float64)              { r.add("line %.2f %.2f", x, y) }
func (r *recorder) ClosePath()                       { r.add("close") }
func (r *recorder) ClearPath()                       { r.add("clearpath") }
func (r *recorder) DrawRectangle(x, y, w, h float64) { r.add("rect %.2f %.2f %.2f %.2f", x, y, w, h) }
func (r *recorder) DrawEllipse(x, y, rx, ry float64) {
	r.add("ellipse %.2f %.2f %.2f %.2f", x, y, rx, ry)
}
func (r *recorder) Fill() error       { r.add("fill"); return nil }
func (r *recorder) Stroke() error     { r.add("stroke"); return nil }
func (r *recorder) SetFont(text.Face) { r.add("font") }
func (r *recorder) DrawString(s string, x, y float64) {
	r.add("text %q", s)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func line(x0, y0, x1, y1 float32) []state.Point {
	return []state.Point{state.NewPoint(x0, y0, 0), state.NewPoint((x0+x1)/2, (y0+y1)/2, 0), state.NewPoint(x1, y1, 0)}
}

func TestRenderNoSurface(t *testing.T) {
	r := newRenderer(t)
	r.Render(nil, Frame{Scene: state.NewScene()})

	rec := &recorder{}
	r.Render(rec, Frame{Scene: state.NewScene()})
	assert.Empty(t, rec.calls)
}

func TestRenderIdempotent(t *testing.T) {
	r := newRenderer(t)
	scene := state.NewScene()
	_, ok := scene.AddStroke(state.Stroke{Points: line(0, 0, 100, 0), Color: "black", Width: 3, Brush: state.BrushSketchy})
	require.True(t, ok)
	sh, ok := scene.AddShape(state.Shape{Kind: state.ShapeCircle, Start: state.NewPoint(0, 0, 0), End: state.NewPoint(40, 20, 0), Color: "#ff0000", Width: 2})
	require.True(t, ok)
	scene.Select(state.Selection{Target: state.TargetShape, ID: sh.ID})

	f := Frame{Scene: scene, Viewport: state.Viewport{Zoom: 1.5, Pan: state.Vec{X: 10, Y: 5}}, PixelScale: 2}
	a := &recorder{w: 200, h: 100}
	b := &recorder{w: 200, h: 100}
	r.Render(a, f)
	r.Render(b, f)
	assert.Equal(t, a.calls, b.calls)
	assert.Equal(t, a.count("push"), a.count("pop"))
}

func TestRenderTransformOrder(t *testing.T) {
	r := newRenderer(t)
	rec := &recorder{w: 10, h: 10}
	r.Render(rec, Frame{Scene: state.NewScene(), Viewport: state.Viewport{Zoom: 2, Pan: state.Vec{X: 3, Y: 4}}, PixelScale: 2})

	var transforms []string
	for _, c := range rec.calls {
		if strings.HasPrefix(c, "scale") || strings.HasPrefix(c, "translate") {
			transforms = append(transforms, c)
		}
	}
	assert.Equal(t, []string{"scale 2.00 2.00", "translate 3.00 4.00", "scale 2.00 2.00"}, transforms)
}

func TestRenderLaserGlow(t *testing.T) {
	r := newRenderer(t)
	scene := state.NewScene()
	_, ok := scene.AddStroke(state.Stroke{Points: line(0, 0, 50, 50), Color: "red", Width: 4, Brush: state.BrushLaser})
	require.True(t, ok)

	rec := &recorder{w: 100, h: 100}
	r.Render(rec, Frame{Scene: scene})
	assert.Equal(t, len(laserGlow)+1, rec.count("stroke"))
	assert.Equal(t, 1, rec.count("fill"), "only the background is filled")
}

func TestRenderTexturePass(t *testing.T) {
	r := newRenderer(t)
	for _, tc := range []struct {
		brush state.BrushProfile
		fills int
	}{
		{state.BrushNormal, 2},
		{state.BrushRough, 3},
		{state.BrushSketchy, 3},
	} {
		t.Run(string(tc.brush), func(t *testing.T) {
			scene := state.NewScene()
			_, ok := scene.AddStroke(state.Stroke{Points: line(0, 0, 80, 10), Color: "blue", Width: 3, Brush: tc.brush})
			require.True(t, ok)
			rec := &recorder{w: 100, h: 100}
			r.Render(rec, Frame{Scene: scene})
			assert.Equal(t, tc.fills, rec.count("fill"))
		})
	}
}

func TestRenderSkipsDegenerateShapes(t *testing.T) {
	r := newRenderer(t)
	scene := state.NewScene()
	p := state.NewPoint(5, 5, 0)
	for _, k := range state.ShapeKinds {
		_, ok := scene.AddShape(state.Shape{Kind: k, Start: p, End: p, Color: "black", Width: 2})
		require.True(t, ok)
	}
	rec := &recorder{w: 100, h: 100}
	r.Render(rec, Frame{Scene: scene})
	assert.Zero(t, rec.count("stroke"))
	assert.Zero(t, rec.count("text"))
}

func TestRenderSelectionDecoration(t *testing.T) {
	r := newRenderer(t)
	scene := state.NewScene()
	sh, ok := scene.AddShape(state.Shape{Kind: state.ShapeSquare, Start: state.NewPoint(0, 0, 0), End: state.NewPoint(100, 50, 0), Color: "black", Width: 2})
	require.True(t, ok)

	rec := &recorder{w: 200, h: 200}
	r.Render(rec, Frame{Scene: scene})
	assert.Zero(t, rec.count("dash "))

	scene.Select(state.Selection{Target: state.TargetShape, ID: sh.ID})
	rec = &recorder{w: 200, h: 200}
	r.Render(rec, Frame{Scene: scene})
	assert.Equal(t, 1, rec.count("dash "))
	assert.Contains(t, rec.calls, "rect -6.00 -6.00 112.00 62.00")
	// background + four handle fills
	assert.Equal(t, 5, rec.count("fill"))

	ref, ok := scene.Selection()
	require.True(t, ok, "rendering leaves the selection alone")
	assert.Equal(t, sh.ID, ref.ID)
	assert.Equal(t, 1, scene.Len())
}

func TestRenderPendingAndEraser(t *testing.T) {
	r := newRenderer(t)
	pending := state.Shape{Kind: state.ShapeArrow, Start: state.NewPoint(0, 0, 0), End: state.NewPoint(30, 0, 0), Color: "black", Width: 2}
	rec := &recorder{w: 100, h: 100}
	r.Render(rec, Frame{
		Scene:        state.NewScene(),
		PendingShape: &pending,
		Eraser:       line(0, 10, 40, 10),
	})
	assert.Equal(t, 2, rec.count("stroke"))
	assert.Contains(t, rec.calls, "move 0.00 10.00")
}

func TestRenderText(t *testing.T) {
	r := newRenderer(t)
	scene := state.NewScene()
	_, ok := scene.AddShape(state.Shape{Kind: state.ShapeText, Start: state.NewPoint(0, 0, 0), End: state.NewPoint(0, 0, 0), Text: "hello", Color: "black", Width: 2})
	require.True(t, ok)

	rec := &recorder{w: 100, h: 100}
	r.Render(rec, Frame{Scene: scene})
	assert.Equal(t, 1, rec.count("text"))
	assert.Equal(t, 1, rec.count("font"))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, ParseColor("#ff0000"))
	assert.Equal(t, ParseColor("#1971c2"), ParseColor("Blue"))
	assert.Equal(t, color.NRGBA{A: 0xff}, ParseColor("not a colour"))
	assert.True(t, ValidColor("red"))
	assert.True(t, ValidColor("#abcdef"))
	assert.False(t, ValidColor("#zzzzzz"))
}
