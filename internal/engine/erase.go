package engine

import (
	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// eraseReach scales a stroke's width into the distance at which an eraser
// sample removes it.
const eraseReach = 2

// eraseAlong removes every element the eraser trail touches and returns how
// many were removed. A stroke goes when one of its points is within
// width*eraseReach of a trail sample or one of its segments crosses a trail
// segment. A shape goes when any trail sample is near it.
func (e *Engine) eraseAlong(trail []state.Point) int {
	if len(trail) == 0 {
		return 0
	}
	var strokes, shapes []string
	for _, st := range e.scene.Strokes() {
		if strokeErased(st, trail) {
			strokes = append(strokes, st.ID)
		}
	}
	for _, sh := range e.scene.Shapes() {
		for _, p := range trail {
			if geom.IsNearShape(p.X, p.Y, sh) {
				shapes = append(shapes, sh.ID)
				break
			}
		}
	}
	n := e.scene.RemoveStrokes(strokes...) + e.scene.RemoveShapes(shapes...)
	if n > 0 {
		e.log.Debug("erased", "strokes", len(strokes), "shapes", len(shapes), "samples", len(trail))
	}
	return n
}

func strokeErased(st state.Stroke, trail []state.Point) bool {
	reach := st.Width * eraseReach
	for _, p := range st.Points {
		for _, q := range trail {
			if geom.Distance(p.X, p.Y, q.X, q.Y) <= reach {
				return true
			}
		}
	}
	for i := 1; i < len(st.Points); i++ {
		for j := 1; j < len(trail); j++ {
			if geom.SegmentsIntersect(st.Points[i-1], st.Points[i], trail[j-1], trail[j]) {
				return true
			}
		}
	}
	return false
}
