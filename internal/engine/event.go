package engine

import "fmt"

// EventKind tags an input Event.
type EventKind string

const (
	EventDown   EventKind = "down"
	EventMove   EventKind = "move"
	EventUp     EventKind = "up"
	EventCancel EventKind = "cancel"
	EventWheel  EventKind = "wheel"
	EventKey    EventKind = "key"
)

// Key names the keys the engine reacts to.
type Key string

const (
	KeySpace  Key = "space"
	KeyEnter  Key = "enter"
	KeyEscape Key = "escape"
	KeyDelete Key = "delete"
)

// Event is a device-neutral input sample in screen coordinates. It is the
// wire shape of the pen bridge.
type Event struct {
	Type     EventKind `json:"type"`
	X        float32   `json:"x"`
	Y        float32   `json:"y"`
	Pressure float32   `json:"pressure,omitempty"`
	DX       float32   `json:"dx,omitempty"`
	DY       float32   `json:"dy,omitempty"`
	Ctrl     bool      `json:"ctrl,omitempty"`
	Key      Key       `json:"key,omitempty"`
	Pressed  bool      `json:"pressed,omitempty"`
}

// Handle dispatches ev to the matching entry point.
func (e *Engine) Handle(ev Event) error {
	switch ev.Type {
	case EventDown:
		e.PointerDown(ev.X, ev.Y, ev.Pressure)
	case EventMove:
		e.PointerMove(ev.X, ev.Y, ev.Pressure)
	case EventUp:
		e.PointerUp()
	case EventCancel:
		e.PointerCancel()
	case EventWheel:
		e.Wheel(ev.X, ev.Y, ev.DX, ev.DY, ev.Ctrl)
	case EventKey:
		if ev.Pressed {
			e.KeyDown(ev.Key)
		} else {
			e.KeyUp(ev.Key)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}
