package state

import (
	"log/slog"
	"slices"

	"SketchBoard/internal/logging"
)

// UndoOrder selects which element Undo removes.
type UndoOrder string

const (
	// UndoShapesFirst removes the newest shape while any shape exists and
	// only then falls back to strokes. It does not track creation order
	// across the two collections: a stroke drawn after a shape survives an
	// undo that removes the older shape.
	UndoShapesFirst UndoOrder = "shapes-first"
	// UndoCreation removes the most recently created element across both
	// collections.
	UndoCreation UndoOrder = "creation"
)

// Valid reports whether o is a known policy.
func (o UndoOrder) Valid() bool {
	return o == UndoShapesFirst || o == UndoCreation
}

// Scene holds the mutable stroke and shape collections and the current
// selection. It is not safe for concurrent use; all mutation happens on the
// input thread.
type Scene struct {
	strokes   []Stroke
	shapes    []Shape
	created   map[string]uint64
	selection *Selection
	undoOrder UndoOrder
	log       *slog.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithUndoOrder sets the undo policy. Unknown values are ignored.
func WithUndoOrder(o UndoOrder) Option {
	return func(s *Scene) {
		if o.Valid() {
			s.undoOrder = o
		}
	}
}

// NewScene returns an empty scene.
func NewScene(opts ...Option) *Scene {
	s := &Scene{
		strokes:   make([]Stroke, 0),
		shapes:    make([]Shape, 0),
		created:   make(map[string]uint64),
		undoOrder: UndoShapesFirst,
		log:       logging.For("scene"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// UndoOrder returns the active undo policy.
func (s *Scene) UndoOrder() UndoOrder { return s.undoOrder }

// AddStroke commits st. Strokes with fewer than two points are rejected.
// An empty id is replaced with a fresh one; a duplicate id is rejected.
func (s *Scene) AddStroke(st Stroke) (Stroke, bool) {
	if len(st.Points) < 2 {
		return Stroke{}, false
	}
	if st.ID == "" {
		st.ID = NewStrokeID()
	}
	if _, dup := s.created[st.ID]; dup {
		return Stroke{}, false
	}
	st.Points = slices.Clone(st.Points)
	s.strokes = append(s.strokes, st)
	s.created[st.ID] = nextSeq()
	s.log.Debug("stroke added", "id", st.ID, "points", len(st.Points), "brush", st.Brush)
	return st, true
}

// AddShape commits sh. An empty id is replaced with a fresh one; a
// duplicate id is rejected.
func (s *Scene) AddShape(sh Shape) (Shape, bool) {
	if sh.ID == "" {
		sh.ID = NewShapeID()
	}
	if _, dup := s.created[sh.ID]; dup {
		return Shape{}, false
	}
	s.shapes = append(s.shapes, sh)
	s.created[sh.ID] = nextSeq()
	s.log.Debug("shape added", "id", sh.ID, "kind", sh.Kind)
	return sh, true
}

// Strokes returns a copy of the stroke collection in creation order.
func (s *Scene) Strokes() []Stroke {
	return slices.Clone(s.strokes)
}

// Shapes returns a copy of the shape collection in creation order.
func (s *Scene) Shapes() []Shape {
	return slices.Clone(s.shapes)
}

// Len returns the total number of elements.
func (s *Scene) Len() int {
	return len(s.strokes) + len(s.shapes)
}

// Stroke looks up a stroke by id.
func (s *Scene) Stroke(id string) (Stroke, bool) {
	i := s.strokeIndex(id)
	if i < 0 {
		return Stroke{}, false
	}
	return s.strokes[i], true
}

// Shape looks up a shape by id.
func (s *Scene) Shape(id string) (Shape, bool) {
	i := s.shapeIndex(id)
	if i < 0 {
		return Shape{}, false
	}
	return s.shapes[i], true
}

// Element resolves a selection reference.
func (s *Scene) Element(ref Selection) (Element, bool) {
	switch ref.Target {
	case TargetStroke:
		if i := s.strokeIndex(ref.ID); i >= 0 {
			st := s.strokes[i]
			return Element{Stroke: &st}, true
		}
	case TargetShape:
		if i := s.shapeIndex(ref.ID); i >= 0 {
			sh := s.shapes[i]
			return Element{Shape: &sh}, true
		}
	}
	return Element{}, false
}

// UpdateStroke applies fn to the stroke with the given id. The id cannot be
// changed and the edit is dropped if it leaves fewer than two points.
func (s *Scene) UpdateStroke(id string, fn func(*Stroke)) bool {
	i := s.strokeIndex(id)
	if i < 0 {
		return false
	}
	st := s.strokes[i]
	st.Points = slices.Clone(st.Points)
	fn(&st)
	if len(st.Points) < 2 {
		return false
	}
	st.ID = id
	s.strokes[i] = st
	return true
}

// UpdateShape applies fn to the shape with the given id. The id cannot be
// changed.
func (s *Scene) UpdateShape(id string, fn func(*Shape)) bool {
	i := s.shapeIndex(id)
	if i < 0 {
		return false
	}
	sh := s.shapes[i]
	fn(&sh)
	sh.ID = id
	s.shapes[i] = sh
	return true
}

// RemoveStrokes deletes the strokes with the given ids and returns how many
// were removed.
func (s *Scene) RemoveStrokes(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	before := len(s.strokes)
	s.strokes = slices.DeleteFunc(s.strokes, func(st Stroke) bool {
		return slices.Contains(ids, st.ID)
	})
	s.forget(TargetStroke, ids)
	return before - len(s.strokes)
}

// RemoveShapes deletes the shapes with the given ids and returns how many
// were removed.
func (s *Scene) RemoveShapes(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	before := len(s.shapes)
	s.shapes = slices.DeleteFunc(s.shapes, func(sh Shape) bool {
		return slices.Contains(ids, sh.ID)
	})
	s.forget(TargetShape, ids)
	return before - len(s.shapes)
}

// Remove deletes the element ref points at.
func (s *Scene) Remove(ref Selection) bool {
	switch ref.Target {
	case TargetStroke:
		return s.RemoveStrokes(ref.ID) > 0
	case TargetShape:
		return s.RemoveShapes(ref.ID) > 0
	}
	return false
}

// Clear removes every element and the selection.
func (s *Scene) Clear() {
	s.strokes = s.strokes[:0]
	s.shapes = s.shapes[:0]
	clear(s.created)
	s.selection = nil
}

// Undo removes one element according to the undo policy and reports whether
// anything was removed.
func (s *Scene) Undo() bool {
	ref, ok := s.undoTarget()
	if !ok {
		return false
	}
	s.log.Debug("undo", "target", ref.Target, "id", ref.ID, "order", s.undoOrder)
	return s.Remove(ref)
}

func (s *Scene) undoTarget() (Selection, bool) {
	if s.undoOrder == UndoCreation {
		var (
			best  Selection
			found bool
			seq   uint64
		)
		for _, st := range s.strokes {
			if c := s.created[st.ID]; !found || c > seq {
				best, seq, found = Selection{Target: TargetStroke, ID: st.ID}, c, true
			}
		}
		for _, sh := range s.shapes {
			if c := s.created[sh.ID]; !found || c > seq {
				best, seq, found = Selection{Target: TargetShape, ID: sh.ID}, c, true
			}
		}
		return best, found
	}
	if n := len(s.shapes); n > 0 {
		return Selection{Target: TargetShape, ID: s.shapes[n-1].ID}, true
	}
	if n := len(s.strokes); n > 0 {
		return Selection{Target: TargetStroke, ID: s.strokes[n-1].ID}, true
	}
	return Selection{}, false
}

// Selection returns the current selection, if any.
func (s *Scene) Selection() (Selection, bool) {
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// Select sets the selection. References to missing elements clear it.
func (s *Scene) Select(ref Selection) bool {
	if _, ok := s.Element(ref); !ok {
		s.selection = nil
		return false
	}
	s.selection = &ref
	return true
}

// ClearSelection drops the current selection.
func (s *Scene) ClearSelection() {
	s.selection = nil
}

// Selected resolves the current selection. A dangling selection is cleared.
func (s *Scene) Selected() (Element, bool) {
	if s.selection == nil {
		return Element{}, false
	}
	e, ok := s.Element(*s.selection)
	if !ok {
		s.selection = nil
	}
	return e, ok
}

func (s *Scene) forget(target TargetType, ids []string) {
	for _, id := range ids {
		delete(s.created, id)
	}
	if s.selection != nil && s.selection.Target == target && slices.Contains(ids, s.selection.ID) {
		s.selection = nil
	}
}

func (s *Scene) strokeIndex(id string) int {
	return slices.IndexFunc(s.strokes, func(st Stroke) bool { return st.ID == id })
}

func (s *Scene) shapeIndex(id string) int {
	return slices.IndexFunc(s.shapes, func(sh Shape) bool { return sh.ID == id })
}
