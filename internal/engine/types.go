package engine

import (
	"fmt"

	"SketchBoard/internal/state"
)

// State is the single active interaction mode.
type State int

const (
	Idle State = iota
	Drawing
	ShapeDragging
	Erasing
	TextEditing
	ElementDragging
	ElementResizing
	Panning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case ShapeDragging:
		return "shape-dragging"
	case Erasing:
		return "erasing"
	case TextEditing:
		return "text-editing"
	case ElementDragging:
		return "element-dragging"
	case ElementResizing:
		return "element-resizing"
	case Panning:
		return "panning"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Tool is the active toolbar tool. Shape tools share their names with
// state.ShapeKind.
type Tool string

const (
	ToolPen      Tool = "pen"
	ToolSelect   Tool = "select"
	ToolText     Tool = "text"
	ToolSquare   Tool = Tool(state.ShapeSquare)
	ToolTriangle Tool = Tool(state.ShapeTriangle)
	ToolArrow    Tool = Tool(state.ShapeArrow)
	ToolDiamond  Tool = Tool(state.ShapeDiamond)
	ToolCircle   Tool = Tool(state.ShapeCircle)
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPen, ToolSelect, ToolText, ToolSquare, ToolTriangle, ToolArrow, ToolDiamond, ToolCircle}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	for _, k := range Tools {
		if k == t {
			return true
		}
	}
	return false
}

// ShapeKind returns the shape a tool drags out. The text tool is not a
// drag tool and reports false.
func (t Tool) ShapeKind() (state.ShapeKind, bool) {
	switch t {
	case ToolSquare, ToolTriangle, ToolArrow, ToolDiamond, ToolCircle:
		return state.ShapeKind(t), true
	}
	return "", false
}

// Cursor is the pointer feedback for the current state.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorText
	CursorGrab
	CursorGrabbing
	// CursorResizeNWSE serves the nw and se handles.
	CursorResizeNWSE
	// CursorResizeNESW serves the ne and sw handles.
	CursorResizeNESW
)

func (c Cursor) String() string {
	switch c {
	case CursorCrosshair:
		return "crosshair"
	case CursorText:
		return "text"
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorResizeNWSE:
		return "nwse-resize"
	case CursorResizeNESW:
		return "nesw-resize"
	}
	return "default"
}

// Change flags what an operation touched. Observers receive the union for
// each operation.
type Change uint16

const (
	// ChangeScene means strokes or shapes were added, edited or removed.
	ChangeScene Change = 1 << iota
	ChangeSelection
	ChangeViewport
	// ChangeTool covers the toolbar settings: tool, colour, width, brush and
	// erase mode.
	ChangeTool
	ChangeMode
	// ChangeText means a text entry opened, closed or was edited.
	ChangeText
	// ChangeOverlay means the in-progress element, eraser trail or cursor
	// changed.
	ChangeOverlay
)

// Has reports whether every flag in f is set.
func (c Change) Has(f Change) bool { return c&f == f }

// TextEntry is an open inline text input anchored in world space.
type TextEntry struct {
	At   state.Point
	Text string
}
