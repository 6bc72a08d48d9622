package engine

import (
	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Tool returns the active tool.
func (e *Engine) Tool() Tool { return e.tool }

// SetTool switches tools. An open text entry is committed, erase mode is
// turned off and the selection is cleared.
func (e *Engine) SetTool(t Tool) {
	if !t.Valid() {
		e.log.Warn("unknown tool ignored", "tool", t)
		return
	}
	c := e.commitText()
	if e.tool != t || e.erase {
		c |= ChangeTool
	}
	e.tool = t
	e.erase = false
	if e.hasSelection() {
		e.scene.ClearSelection()
		c |= ChangeSelection
	}
	e.hover = geom.HandleNone
	e.notify(c)
}

// Color returns the active colour.
func (e *Engine) Color() string { return e.color }

// SetColor sets the colour for new elements.
func (e *Engine) SetColor(c string) {
	if c == e.color {
		return
	}
	e.color = c
	e.notify(ChangeTool)
}

// Width returns the active stroke width.
func (e *Engine) Width() float32 { return e.size }

// SetWidth sets the width for new elements, clamped to [MinWidth, MaxWidth].
func (e *Engine) SetWidth(w float32) {
	w = clampWidth(w)
	if w == e.size {
		return
	}
	e.size = w
	e.notify(ChangeTool)
}

// Brush returns the active brush profile.
func (e *Engine) Brush() state.BrushProfile { return e.brush }

// SetBrush sets the profile for new strokes. Unknown profiles are ignored.
func (e *Engine) SetBrush(b state.BrushProfile) {
	if !b.Valid() || b == e.brush {
		return
	}
	e.brush = b
	e.notify(ChangeTool)
}

// EraseMode reports whether pointer gestures erase.
func (e *Engine) EraseMode() bool { return e.erase }

// SetEraseMode toggles erasing. An open text entry is committed first.
func (e *Engine) SetEraseMode(on bool) {
	c := e.commitText()
	if on != e.erase {
		e.erase = on
		c |= ChangeTool
	}
	e.notify(c)
}
