package geom

import (
	"github.com/chewxy/math32"

	"SketchBoard/internal/state"
)

// Margin is the hit-test tolerance for an element of the given width.
func Margin(width float32) float32 {
	return width * HitFactor
}

// IsNearStroke reports whether (x, y) lies within the margin of any
// segment of st.
func IsNearStroke(x, y float32, st state.Stroke) bool {
	p := pt(x, y)
	m := Margin(st.Width)
	if len(st.Points) == 1 {
		return Distance(x, y, st.Points[0].X, st.Points[0].Y) <= m
	}
	for i := 1; i < len(st.Points); i++ {
		if DistancePointToSegment(p, st.Points[i-1], st.Points[i]) <= m {
			return true
		}
	}
	return false
}

// IsNearShape runs the per-kind edge proximity test. Text is hit anywhere
// inside its box grown by the margin. Degenerate shapes never hit.
func IsNearShape(x, y float32, sh state.Shape) bool {
	if IsDegenerate(sh) {
		return false
	}
	m := Margin(sh.Width)
	p := pt(x, y)
	switch sh.Kind {
	case state.ShapeSquare:
		return nearPolygon(p, RectVertices(sh), m)
	case state.ShapeTriangle:
		return nearPolygon(p, TriangleVertices(sh), m)
	case state.ShapeDiamond:
		return nearPolygon(p, DiamondVertices(sh), m)
	case state.ShapeArrow:
		if DistancePointToSegment(p, sh.Start, sh.End) <= m {
			return true
		}
		l, r := ArrowHead(sh)
		return DistancePointToSegment(p, sh.End, l) <= m || DistancePointToSegment(p, sh.End, r) <= m
	case state.ShapeCircle:
		cx, cy, rx, ry := Ellipse(sh)
		nx, ny := (x-cx)/rx, (y-cy)/ry
		d := math32.Sqrt(nx*nx + ny*ny)
		return math32.Abs(d-1)*math32.Min(rx, ry) <= m
	case state.ShapeText:
		return BoundsOfShape(sh).Expand(m).Contains(x, y)
	}
	return false
}

// IsNear dispatches on the element tag.
func IsNear(x, y float32, e state.Element) bool {
	switch {
	case e.Stroke != nil:
		return IsNearStroke(x, y, *e.Stroke)
	case e.Shape != nil:
		return IsNearShape(x, y, *e.Shape)
	}
	return false
}

// nearPolygon tests every edge of the closed polygon.
func nearPolygon(p state.Point, vs []state.Point, margin float32) bool {
	for i := range vs {
		if DistancePointToSegment(p, vs[i], vs[(i+1)%len(vs)]) <= margin {
			return true
		}
	}
	return false
}
