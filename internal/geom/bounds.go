package geom

import (
	"github.com/chewxy/math32"

	"SketchBoard/internal/state"
)

// BoundsOfStroke is the axis-aligned box of every point.
func BoundsOfStroke(st state.Stroke) Rect {
	if len(st.Points) == 0 {
		return Rect{}
	}
	minX, minY := st.Points[0].X, st.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range st.Points[1:] {
		minX = math32.Min(minX, p.X)
		minY = math32.Min(minY, p.Y)
		maxX = math32.Max(maxX, p.X)
		maxY = math32.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// BoundsOfShape is the normalised anchor box. Text whose anchor box has
// collapsed falls back to its natural glyph extent.
func BoundsOfShape(sh state.Shape) Rect {
	r := RectFromPoints(sh.Start, sh.End)
	if sh.Kind == state.ShapeText && r.Empty() {
		return NaturalTextRect(sh)
	}
	return r
}

// BoundsOf dispatches on the element tag.
func BoundsOf(e state.Element) Rect {
	switch {
	case e.Stroke != nil:
		return BoundsOfStroke(*e.Stroke)
	case e.Shape != nil:
		return BoundsOfShape(*e.Shape)
	}
	return Rect{}
}

// IsDegenerate reports elements that can be neither drawn nor hit.
func IsDegenerate(sh state.Shape) bool {
	switch sh.Kind {
	case state.ShapeText:
		return sh.Text == "" || BoundsOfShape(sh).Empty()
	case state.ShapeArrow:
		return sh.Start.X == sh.End.X && sh.Start.Y == sh.End.Y
	case state.ShapeSquare, state.ShapeTriangle, state.ShapeDiamond, state.ShapeCircle:
		return RectFromPoints(sh.Start, sh.End).Empty()
	}
	return true
}

// RectVertices returns the four corners of the anchor box, clockwise from
// the top-left.
func RectVertices(sh state.Shape) []state.Point {
	r := RectFromPoints(sh.Start, sh.End)
	return []state.Point{
		pt(r.X, r.Y), pt(r.MaxX(), r.Y), pt(r.MaxX(), r.MaxY()), pt(r.X, r.MaxY()),
	}
}

// TriangleVertices puts the apex at the middle of the start edge and the
// base along the end edge.
func TriangleVertices(sh state.Shape) []state.Point {
	midX := (sh.Start.X + sh.End.X) / 2
	return []state.Point{
		pt(midX, sh.Start.Y), pt(sh.End.X, sh.End.Y), pt(sh.Start.X, sh.End.Y),
	}
}

// DiamondVertices are the edge midpoints of the anchor box.
func DiamondVertices(sh state.Shape) []state.Point {
	midX := (sh.Start.X + sh.End.X) / 2
	midY := (sh.Start.Y + sh.End.Y) / 2
	return []state.Point{
		pt(midX, sh.Start.Y), pt(sh.End.X, midY), pt(midX, sh.End.Y), pt(sh.Start.X, midY),
	}
}

// ArrowHeadLength is the length of each head segment for a given width.
func ArrowHeadLength(width float32) float32 {
	return math32.Max(12, width*4)
}

// ArrowHead returns the two outer points of the head; each forms a segment
// with the arrow tip at End.
func ArrowHead(sh state.Shape) (left, right state.Point) {
	angle := math32.Atan2(sh.End.Y-sh.Start.Y, sh.End.X-sh.Start.X)
	l := ArrowHeadLength(sh.Width)
	const spread = math32.Pi / 6
	left = pt(sh.End.X-l*math32.Cos(angle-spread), sh.End.Y-l*math32.Sin(angle-spread))
	right = pt(sh.End.X-l*math32.Cos(angle+spread), sh.End.Y-l*math32.Sin(angle+spread))
	return left, right
}

// Ellipse returns the centre and radii of the ellipse inscribed in the
// anchor box.
func Ellipse(sh state.Shape) (cx, cy, rx, ry float32) {
	r := RectFromPoints(sh.Start, sh.End)
	cx, cy = r.Center()
	return cx, cy, r.W / 2, r.H / 2
}
