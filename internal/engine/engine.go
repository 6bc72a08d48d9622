// Package engine is the canvas interaction state machine. It turns pointer,
// wheel and key input into scene and viewport mutations and tells observers
// what changed. An Engine is not safe for concurrent use; feed it from one
// goroutine.
package engine

import (
	"errors"
	"log/slog"

	"SketchBoard/internal/export"
	"SketchBoard/internal/geom"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// Stroke width limits offered by the toolbar.
const (
	MinWidth float32 = 1
	MaxWidth float32 = 20
)

var (
	ErrViewportNotReady = errors.New("engine: viewport has no size")
	ErrNoRenderer       = errors.New("engine: no renderer configured")
	ErrUnknownEvent     = errors.New("engine: unknown event")
)

// Engine owns the interaction state for one canvas.
type Engine struct {
	scene    *state.Scene
	view     state.Viewport
	renderer *render.Renderer
	log      *slog.Logger

	width, height float32

	tool  Tool
	color string
	size  float32
	brush state.BrushProfile
	erase bool

	mode      State
	spaceHeld bool

	// per-gesture
	lastScreen   state.Vec
	lastWorld    state.Point
	pending      *state.Stroke
	pendingShape *state.Shape
	eraser       []state.Point
	target       state.Selection
	handle       geom.Handle
	hover        geom.Handle
	origin       state.Element
	originBox    geom.Rect
	resizeDelta  state.Vec

	text *TextEntry

	observers []func(Change)
}

// Option configures an Engine.
type Option func(*Engine)

// WithViewport sets the initial viewport. The zoom is clamped.
func WithViewport(v state.Viewport) Option {
	return func(e *Engine) {
		v.Zoom = v.Scale()
		e.view = v
	}
}

// WithRenderer enables Export.
func WithRenderer(r *render.Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithTool sets the initial tool.
func WithTool(t Tool) Option {
	return func(e *Engine) {
		if t.Valid() {
			e.tool = t
		}
	}
}

// WithColor sets the initial colour.
func WithColor(c string) Option {
	return func(e *Engine) { e.color = c }
}

// WithWidth sets the initial stroke width.
func WithWidth(w float32) Option {
	return func(e *Engine) { e.size = clampWidth(w) }
}

// WithBrush sets the initial brush profile.
func WithBrush(b state.BrushProfile) Option {
	return func(e *Engine) {
		if b.Valid() {
			e.brush = b
		}
	}
}

// New returns an engine driving scene. A nil scene gets a fresh one.
func New(scene *state.Scene, opts ...Option) *Engine {
	if scene == nil {
		scene = state.NewScene()
	}
	e := &Engine{
		scene: scene,
		view:  state.NewViewport(),
		log:   logging.For("engine"),
		tool:  ToolPen,
		color: "black",
		size:  2,
		brush: state.BrushNormal,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Scene returns the scene being edited.
func (e *Engine) Scene() *state.Scene { return e.scene }

// Viewport returns the current pan and zoom.
func (e *Engine) Viewport() state.Viewport { return e.view }

// State returns the active interaction mode.
func (e *Engine) State() State { return e.mode }

// Text returns the open text entry, if any.
func (e *Engine) Text() (TextEntry, bool) {
	if e.text == nil {
		return TextEntry{}, false
	}
	return *e.text, true
}

// Observe registers fn to be called after every operation that changed
// something.
func (e *Engine) Observe(fn func(Change)) {
	e.observers = append(e.observers, fn)
}

func (e *Engine) notify(c Change) {
	if c == 0 {
		return
	}
	for _, fn := range e.observers {
		fn(c)
	}
}

func (e *Engine) setMode(s State) Change {
	if e.mode == s {
		return 0
	}
	e.log.Debug("transition", "from", e.mode, "to", s)
	e.mode = s
	return ChangeMode
}

// SetViewportSize records the logical size of the drawing surface.
func (e *Engine) SetViewportSize(w, h float32) {
	e.width, e.height = w, h
}

// ViewportSize returns the logical size last recorded.
func (e *Engine) ViewportSize() (float32, float32) {
	return e.width, e.height
}

// Frame describes what the renderer should draw right now.
func (e *Engine) Frame() render.Frame {
	return render.Frame{
		Scene:        e.scene,
		Viewport:     e.view,
		Pending:      e.pending,
		PendingShape: e.pendingShape,
		Eraser:       e.eraser,
	}
}

// Export renders the board at scale times the viewport size and returns
// PNG bytes.
func (e *Engine) Export(scale float32) ([]byte, error) {
	if e.width <= 0 || e.height <= 0 {
		return nil, ErrViewportNotReady
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	return export.Snapshot(e.renderer, e.Frame(), e.width, e.height, scale)
}

// Undo removes one element and reports whether anything changed.
func (e *Engine) Undo() bool {
	had := e.hasSelection()
	if !e.scene.Undo() {
		return false
	}
	c := ChangeScene
	if had != e.hasSelection() {
		c |= ChangeSelection
	}
	e.notify(c)
	return true
}

// Delete removes the selected element.
func (e *Engine) Delete() bool {
	ref, ok := e.scene.Selection()
	if !ok || !e.scene.Remove(ref) {
		return false
	}
	e.log.Debug("deleted selection", "target", ref.Target, "id", ref.ID)
	e.notify(ChangeScene | ChangeSelection)
	return true
}

// Clear removes every element.
func (e *Engine) Clear() {
	e.scene.Clear()
	e.notify(ChangeScene | ChangeSelection)
}

// Cursor maps the current state to pointer feedback.
func (e *Engine) Cursor() Cursor {
	switch {
	case e.mode == Panning:
		return CursorGrabbing
	case e.spaceHeld:
		return CursorGrab
	case e.erase:
		return CursorCrosshair
	case e.tool == ToolSelect:
		h := e.hover
		if e.mode == ElementResizing {
			h = e.handle
		}
		switch h {
		case geom.HandleNW, geom.HandleSE:
			return CursorResizeNWSE
		case geom.HandleNE, geom.HandleSW:
			return CursorResizeNESW
		}
		if e.mode == ElementDragging {
			return CursorGrabbing
		}
		if e.hasSelection() {
			return CursorGrab
		}
		return CursorDefault
	case e.tool == ToolText:
		return CursorText
	}
	return CursorCrosshair
}

func (e *Engine) hasSelection() bool {
	_, ok := e.scene.Selection()
	return ok
}

func clampWidth(w float32) float32 {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}
