// Package render draws a scene and viewport onto a Surface. Rendering is a
// pure function of its inputs: calling Render twice with the same frame
// produces the same output.
package render

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"SketchBoard/internal/freehand"
	"SketchBoard/internal/geom"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

var (
	selectionColor = color.NRGBA{R: 0x22, G: 0x8b, B: 0xe6, A: 0xff}
	eraserColor    = color.NRGBA{R: 0x86, G: 0x8e, B: 0x96, A: 0x66}
)

const (
	textureAlpha = 0.35
	eraserWidth  = 10
)

// laserGlow lists the halo passes drawn under a laser stroke, widest first:
// width multiplier and alpha.
var laserGlow = [][2]float32{{4, 0.12}, {2.5, 0.25}}

// Frame is everything one redraw depends on.
type Frame struct {
	Scene    *state.Scene
	Viewport state.Viewport
	// PixelScale is device pixels per logical pixel; zero means 1.
	PixelScale float32
	// Pending is the freehand stroke being drawn, if any.
	Pending *state.Stroke
	// PendingShape is the shape being dragged out, if any.
	PendingShape *state.Shape
	// Eraser is the world-space trail of the active erase gesture.
	Eraser []state.Point
}

// Renderer holds the immutable resources shared by every frame.
type Renderer struct {
	profiles   freehand.Table
	fonts      *text.FontSource
	background color.NRGBA
	log        *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfiles replaces the brush table.
func WithProfiles(t freehand.Table) Option {
	return func(r *Renderer) { r.profiles = t }
}

// WithBackground sets the clear colour.
func WithBackground(c color.NRGBA) Option {
	return func(r *Renderer) { r.background = c }
}

// New loads the text font and returns a Renderer.
func New(opts ...Option) (*Renderer, error) {
	fonts, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load text font: %w", err)
	}
	r := &Renderer{
		profiles:   freehand.DefaultTable(),
		fonts:      fonts,
		background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		log:        logging.For("render"),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Close releases the font source.
func (r *Renderer) Close() error {
	return r.fonts.Close()
}

// Render clears s and draws f. A nil or zero-sized surface is ignored.
func (r *Renderer) Render(s Surface, f Frame) {
	if s == nil || s.Width() <= 0 || s.Height() <= 0 {
		return
	}
	s.Identity()
	s.ClearDash()
	s.ClearPath()
	s.SetColor(r.background)
	s.DrawRectangle(0, 0, float64(s.Width()), float64(s.Height()))
	r.fill(s)
	if f.Scene == nil {
		return
	}

	px := f.PixelScale
	if px <= 0 {
		px = 1
	}
	zoom := f.Viewport.Scale()
	s.Push()
	defer s.Pop()
	s.Scale(float64(px), float64(px))
	s.Translate(float64(f.Viewport.Pan.X), float64(f.Viewport.Pan.Y))
	s.Scale(float64(zoom), float64(zoom))

	for _, st := range f.Scene.Strokes() {
		r.drawStroke(s, st, true)
	}
	for _, sh := range f.Scene.Shapes() {
		r.drawShape(s, sh)
	}
	if f.Pending != nil {
		r.drawStroke(s, *f.Pending, false)
	}
	if f.PendingShape != nil {
		r.drawShape(s, *f.PendingShape)
	}
	if len(f.Eraser) > 1 {
		s.SetColor(eraserColor)
		s.SetLineWidth(eraserWidth / float64(zoom))
		r.polyline(s, f.Eraser)
		r.stroke(s)
	}
	if ref, ok := f.Scene.Selection(); ok {
		if e, ok := f.Scene.Element(ref); ok {
			r.drawSelection(s, e, zoom)
		}
	}
}

func (r *Renderer) drawStroke(s Surface, st state.Stroke, complete bool) {
	if len(st.Points) == 0 {
		return
	}
	c := ParseColor(st.Color)
	if st.Brush == state.BrushLaser {
		if len(st.Points) < 2 {
			return
		}
		for _, g := range laserGlow {
			s.SetColor(withAlpha(c, g[1]))
			s.SetLineWidth(float64(st.Width * g[0]))
			r.polyline(s, st.Points)
			r.stroke(s)
		}
		s.SetColor(c)
		s.SetLineWidth(float64(st.Width))
		r.polyline(s, st.Points)
		r.stroke(s)
		return
	}

	outline := freehand.Outline(st.Points, r.profiles.Options(st, complete))
	if len(outline) < 2 {
		return
	}
	s.SetColor(c)
	r.polygon(s, outline)
	r.fill(s)

	if st.Brush == state.BrushRough || st.Brush == state.BrushSketchy {
		texture := freehand.Outline(st.Points, r.profiles.TextureOptions(st, complete))
		if len(texture) < 2 {
			return
		}
		s.SetColor(withAlpha(c, textureAlpha))
		r.polygon(s, texture)
		r.fill(s)
	}
}

func (r *Renderer) drawShape(s Surface, sh state.Shape) {
	if geom.IsDegenerate(sh) {
		return
	}
	s.SetColor(ParseColor(sh.Color))
	s.SetLineWidth(float64(sh.Width))
	switch sh.Kind {
	case state.ShapeSquare:
		b := geom.RectFromPoints(sh.Start, sh.End)
		s.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
		r.stroke(s)
	case state.ShapeTriangle:
		r.closedPolyline(s, geom.TriangleVertices(sh))
		r.stroke(s)
	case state.ShapeDiamond:
		r.closedPolyline(s, geom.DiamondVertices(sh))
		r.stroke(s)
	case state.ShapeArrow:
		left, right := geom.ArrowHead(sh)
		s.MoveTo(float64(sh.Start.X), float64(sh.Start.Y))
		s.LineTo(float64(sh.End.X), float64(sh.End.Y))
		s.MoveTo(float64(left.X), float64(left.Y))
		s.LineTo(float64(sh.End.X), float64(sh.End.Y))
		s.LineTo(float64(right.X), float64(right.Y))
		r.stroke(s)
	case state.ShapeCircle:
		cx, cy, rx, ry := geom.Ellipse(sh)
		s.DrawEllipse(float64(cx), float64(cy), float64(rx), float64(ry))
		r.stroke(s)
	case state.ShapeText:
		r.drawText(s, sh)
	}
}

// drawText draws the glyphs at natural size, stretched about the anchor box
// centre when the box has been resized.
func (r *Renderer) drawText(s Surface, sh state.Shape) {
	size := geom.FontSize(sh.Width)
	natural := geom.NaturalTextRect(sh)
	_, ascent, _ := geom.TextMetrics(sh.Text, size)
	sx, sy := geom.TextScale(sh)
	cx, cy := geom.BoundsOfShape(sh).Center()

	s.SetFont(r.fonts.Face(float64(size)))
	s.Push()
	s.Translate(float64(cx), float64(cy))
	s.Scale(float64(sx), float64(sy))
	s.DrawString(sh.Text, float64(-natural.W/2), float64(-natural.H/2+ascent))
	s.Pop()
}

func (r *Renderer) drawSelection(s Surface, e state.Element, zoom float32) {
	box := geom.SelectionBox(e)
	line := 1 / float64(zoom)

	s.SetColor(selectionColor)
	s.SetLineWidth(line)
	s.SetDash(6*line, 4*line)
	s.DrawRectangle(float64(box.X), float64(box.Y), float64(box.W), float64(box.H))
	r.stroke(s)
	s.ClearDash()

	half := geom.HandleSize / 2
	for _, h := range geom.Handles {
		hx, hy := geom.HandlePoint(box, h)
		x, y, size := float64(hx-half), float64(hy-half), float64(geom.HandleSize)
		s.SetColor(r.background)
		s.DrawRectangle(x, y, size, size)
		r.fill(s)
		s.SetColor(selectionColor)
		s.DrawRectangle(x, y, size, size)
		r.stroke(s)
	}
}

func (r *Renderer) polyline(s Surface, pts []state.Point) {
	s.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		s.LineTo(float64(p.X), float64(p.Y))
	}
}

func (r *Renderer) closedPolyline(s Surface, pts []state.Point) {
	r.polyline(s, pts)
	s.ClosePath()
}

func (r *Renderer) polygon(s Surface, pts []freehand.Vec) {
	s.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		s.LineTo(float64(p.X), float64(p.Y))
	}
	s.ClosePath()
}

func (r *Renderer) stroke(s Surface) {
	s.SetLineCap(gg.LineCapRound)
	s.SetLineJoin(gg.LineJoinRound)
	if err := s.Stroke(); err != nil {
		r.log.Debug("stroke skipped", "err", err)
	}
}

func (r *Renderer) fill(s Surface) {
	if err := s.Fill(); err != nil {
		r.log.Debug("fill skipped", "err", err)
	}
}
