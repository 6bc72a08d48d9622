package engine

import (
	"slices"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// PointerDown starts a gesture at screen point (x, y). A pressure of zero
// means the device does not report one.
func (e *Engine) PointerDown(x, y, pressure float32) {
	var c Change
	if e.mode != Idle && e.mode != TextEditing {
		c |= e.finishGesture()
	}
	c |= e.commitText()

	wx, wy := e.view.ScreenToWorld(x, y)
	p := state.NewPoint(wx, wy, pressure)
	e.lastScreen = state.Vec{X: x, Y: y}
	e.lastWorld = p

	switch {
	case e.spaceHeld:
		c |= e.setMode(Panning) | ChangeOverlay
	case e.tool == ToolText:
		e.text = &TextEntry{At: p}
		c |= e.setMode(TextEditing) | ChangeText
	case e.erase:
		e.eraser = []state.Point{p}
		c |= e.setMode(Erasing) | ChangeOverlay
	case e.tool == ToolSelect:
		c |= e.pick(p)
	default:
		if kind, ok := e.tool.ShapeKind(); ok {
			e.pendingShape = &state.Shape{Kind: kind, Start: p, End: p, Color: e.color, Width: e.size}
			c |= e.setMode(ShapeDragging) | ChangeOverlay
			break
		}
		e.pending = &state.Stroke{Points: []state.Point{p}, Color: e.color, Width: e.size, Brush: e.brush}
		c |= e.setMode(Drawing) | ChangeOverlay
	}
	e.notify(c)
}

// pick runs the select tool's pointer-down: resize handle of the current
// selection first, then the topmost element under the pointer.
func (e *Engine) pick(p state.Point) Change {
	if sel, ok := e.scene.Selected(); ok {
		if h := geom.ResizeHandleAt(p.X, p.Y, sel); h != geom.HandleNone {
			e.handle = h
			e.target = sel.Ref()
			e.origin = cloneElement(sel)
			e.originBox = geom.BoundsOf(sel)
			e.resizeDelta = state.Vec{}
			return e.setMode(ElementResizing) | ChangeOverlay
		}
	}
	if ref, ok := e.hitTest(p.X, p.Y); ok {
		var c Change
		if cur, had := e.scene.Selection(); !had || cur != ref {
			c |= ChangeSelection
		}
		e.scene.Select(ref)
		e.target = ref
		return c | e.setMode(ElementDragging) | ChangeOverlay
	}
	if e.hasSelection() {
		e.scene.ClearSelection()
		return ChangeSelection | ChangeOverlay
	}
	return 0
}

// hitTest returns the topmost element near (x, y): shapes before strokes,
// newest first within each collection.
func (e *Engine) hitTest(x, y float32) (state.Selection, bool) {
	shapes := e.scene.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		if geom.IsNearShape(x, y, shapes[i]) {
			return state.Selection{Target: state.TargetShape, ID: shapes[i].ID}, true
		}
	}
	strokes := e.scene.Strokes()
	for i := len(strokes) - 1; i >= 0; i-- {
		if geom.IsNearStroke(x, y, strokes[i]) {
			return state.Selection{Target: state.TargetStroke, ID: strokes[i].ID}, true
		}
	}
	return state.Selection{}, false
}

// PointerMove feeds a move sample at screen point (x, y).
func (e *Engine) PointerMove(x, y, pressure float32) {
	wx, wy := e.view.ScreenToWorld(x, y)
	p := state.NewPoint(wx, wy, pressure)

	var c Change
	switch e.mode {
	case Panning:
		e.view = e.view.PanBy(x-e.lastScreen.X, y-e.lastScreen.Y)
		c |= ChangeViewport
	case Drawing:
		e.pending.Points = append(e.pending.Points, p)
		c |= ChangeOverlay
	case ShapeDragging:
		e.pendingShape.End = p
		c |= ChangeOverlay
	case Erasing:
		e.eraser = append(e.eraser, p)
		c |= ChangeOverlay
	case ElementDragging:
		c |= e.drag(p.X-e.lastWorld.X, p.Y-e.lastWorld.Y)
	case ElementResizing:
		e.resizeDelta.X += p.X - e.lastWorld.X
		e.resizeDelta.Y += p.Y - e.lastWorld.Y
		c |= e.resize()
	case Idle, TextEditing:
		c |= e.updateHover(p)
	}

	e.lastScreen = state.Vec{X: x, Y: y}
	e.lastWorld = p
	e.notify(c)
}

func (e *Engine) drag(dx, dy float32) Change {
	var ok bool
	switch e.target.Target {
	case state.TargetStroke:
		ok = e.scene.UpdateStroke(e.target.ID, func(st *state.Stroke) {
			for i := range st.Points {
				st.Points[i] = st.Points[i].Translate(dx, dy)
			}
		})
	case state.TargetShape:
		ok = e.scene.UpdateShape(e.target.ID, func(sh *state.Shape) {
			sh.Translate(dx, dy)
		})
	}
	if !ok {
		return e.lostTarget()
	}
	return ChangeScene
}

// resize rebuilds the target from its pointer-down snapshot and the total
// delta so far.
func (e *Engine) resize() Change {
	var ok bool
	switch {
	case e.origin.Stroke != nil:
		to := geom.ResizeRect(e.originBox, e.handle, e.resizeDelta.X, e.resizeDelta.Y)
		points := geom.RescalePoints(e.origin.Stroke.Points, e.originBox, to)
		ok = e.scene.UpdateStroke(e.target.ID, func(st *state.Stroke) {
			st.Points = points
		})
	case e.origin.Shape != nil:
		next := *e.origin.Shape
		geom.ResizeShape(&next, e.handle, e.resizeDelta.X, e.resizeDelta.Y)
		ok = e.scene.UpdateShape(e.target.ID, func(sh *state.Shape) {
			sh.Start, sh.End = next.Start, next.End
		})
	}
	if !ok {
		return e.lostTarget()
	}
	return ChangeScene
}

// lostTarget abandons a drag or resize whose element disappeared.
func (e *Engine) lostTarget() Change {
	e.log.Debug("gesture target missing", "target", e.target.Target, "id", e.target.ID)
	e.scene.ClearSelection()
	e.resetGesture()
	return ChangeSelection | ChangeOverlay | e.setMode(Idle)
}

func (e *Engine) updateHover(p state.Point) Change {
	h := geom.HandleNone
	if e.tool == ToolSelect && !e.erase {
		if sel, ok := e.scene.Selected(); ok {
			h = geom.ResizeHandleAt(p.X, p.Y, sel)
		}
	}
	if h == e.hover {
		return 0
	}
	e.hover = h
	return ChangeOverlay
}

// PointerUp ends the current gesture and commits its result.
func (e *Engine) PointerUp() {
	e.notify(e.finishGesture())
}

// PointerCancel ends the gesture exactly like PointerUp. Hosts call it when
// the pointer leaves the surface.
func (e *Engine) PointerCancel() {
	e.PointerUp()
}

func (e *Engine) finishGesture() Change {
	var c Change
	switch e.mode {
	case Drawing:
		if st, ok := e.scene.AddStroke(*e.pending); ok {
			e.log.Debug("stroke committed", "id", st.ID, "points", len(st.Points))
			c |= ChangeScene
		}
	case ShapeDragging:
		if sh, ok := e.scene.AddShape(*e.pendingShape); ok {
			e.log.Debug("shape committed", "id", sh.ID, "kind", sh.Kind, "degenerate", geom.IsDegenerate(sh))
			c |= ChangeScene
		}
	case Erasing:
		had := e.hasSelection()
		if e.eraseAlong(e.eraser) > 0 {
			c |= ChangeScene
		}
		if had != e.hasSelection() {
			c |= ChangeSelection
		}
	}
	if e.pending != nil || e.pendingShape != nil || e.eraser != nil || e.hover != geom.HandleNone {
		c |= ChangeOverlay
	}
	e.resetGesture()
	if e.mode != TextEditing {
		c |= e.setMode(Idle)
	}
	return c
}

func (e *Engine) resetGesture() {
	e.pending = nil
	e.pendingShape = nil
	e.eraser = nil
	e.target = state.Selection{}
	e.handle = geom.HandleNone
	e.hover = geom.HandleNone
	e.origin = state.Element{}
	e.originBox = geom.Rect{}
	e.resizeDelta = state.Vec{}
}

// Wheel handles a scroll of (dx, dy) at screen point (x, y), browser
// convention: positive dy scrolls down. With ctrl held it zooms about the
// pointer, otherwise it pans.
func (e *Engine) Wheel(x, y, dx, dy float32, ctrl bool) {
	next := e.view
	if ctrl {
		if dy == 0 {
			return
		}
		step := state.ZoomStep
		if dy > 0 {
			step = -step
		}
		next = next.ZoomAt(x, y, step)
	} else {
		next = next.PanBy(-dx, -dy)
	}
	if next == e.view {
		return
	}
	e.view = next
	e.notify(ChangeViewport)
}

func cloneElement(el state.Element) state.Element {
	switch {
	case el.Stroke != nil:
		st := *el.Stroke
		st.Points = slices.Clone(st.Points)
		return state.Element{Stroke: &st}
	case el.Shape != nil:
		sh := *el.Shape
		return state.Element{Shape: &sh}
	}
	return state.Element{}
}
