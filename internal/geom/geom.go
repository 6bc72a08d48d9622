// Package geom holds the pure geometry used for hit-testing, bounds and
// selection handles. Every function is side-effect free.
package geom

import (
	"github.com/chewxy/math32"

	"SketchBoard/internal/state"
)

// HitFactor scales an element's width into its hit-test margin.
const HitFactor = 2.5

// Rect is an axis-aligned box with non-negative size.
type Rect struct {
	X, Y, W, H float32
}

// RectFromPoints normalises two arbitrary corners into a Rect.
func RectFromPoints(a, b state.Point) Rect {
	minX, maxX := minMax(a.X, b.X)
	minY, maxY := minMax(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// MaxX is the right edge.
func (r Rect) MaxX() float32 { return r.X + r.W }

// MaxY is the bottom edge.
func (r Rect) MaxY() float32 { return r.Y + r.H }

// Center returns the box centre.
func (r Rect) Center() (float32, float32) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports a zero-area box.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Expand grows the box by pad on every side.
func (r Rect) Expand(pad float32) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}
}

// Contains is inclusive on every edge.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// Distance between two points.
func Distance(ax, ay, bx, by float32) float32 {
	return math32.Hypot(bx-ax, by-ay)
}

// DistancePointToSegment returns the distance from p to segment ab, clamping
// the projection to the endpoints. A zero-length segment degrades to the
// point distance.
func DistancePointToSegment(p, a, b state.Point) float32 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p.X, p.Y, a.X, a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return Distance(p.X, p.Y, a.X+t*dx, a.Y+t*dy)
}

// SegmentsIntersect reports whether p1p2 and p3p4 cross or touch. Parallel
// segments, including collinear overlaps, never intersect.
func SegmentsIntersect(p1, p2, p3, p4 state.Point) bool {
	den := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if den == 0 {
		return false
	}
	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / den
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / den
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

func minMax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

func pt(x, y float32) state.Point {
	return state.Point{X: x, Y: y}
}
