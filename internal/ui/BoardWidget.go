package ui

import (
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/render"
)

// BoardWidget is the drawing surface. It translates fyne input into engine
// calls and paints engine frames into a raster.
type BoardWidget struct {
	widget.BaseWidget
	engine   *engine.Engine
	renderer *render.Renderer
	raster   *canvas.Raster
	dc       *gg.Context
	log      *slog.Logger

	pressed bool
	ctrl    bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

// NewBoardWidget returns a widget driving eng and drawing with r.
func NewBoardWidget(eng *engine.Engine, r *render.Renderer) *BoardWidget {
	b := &BoardWidget{
		engine:   eng,
		renderer: r,
		log:      logging.For("ui"),
	}
	b.raster = canvas.NewRaster(b.draw)
	b.ExtendBaseWidget(b)
	eng.Observe(func(engine.Change) { b.raster.Refresh() })
	return b
}

// Engine returns the engine the widget drives.
func (b *BoardWidget) Engine() *engine.Engine { return b.engine }

// SetCtrl records the zoom modifier. Scroll events carry no modifiers, so
// the window reports them from its key hooks.
func (b *BoardWidget) SetCtrl(down bool) { b.ctrl = down }

// Resize keeps the engine's viewport size in step with the widget.
func (b *BoardWidget) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)
	b.engine.SetViewportSize(size.Width, size.Height)
}

// draw renders the current frame at the raster's pixel size.
func (b *BoardWidget) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	if b.dc == nil || b.dc.Width() != w || b.dc.Height() != h {
		if b.dc != nil {
			if err := b.dc.Close(); err != nil {
				b.log.Debug("release surface", "err", err)
			}
		}
		b.dc = gg.NewContext(w, h)
	}
	f := b.engine.Frame()
	if lw, _ := b.engine.ViewportSize(); lw > 0 {
		f.PixelScale = float32(w) / lw
	}
	b.renderer.Render(b.dc, f)
	return b.dc.Image()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}

func (b *BoardWidget) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.engine.PointerDown(e.Position.X, e.Position.Y, 0)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.release()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.pressed {
		return
	}
	b.engine.PointerMove(e.Position.X, e.Position.Y, 0)
}

func (b *BoardWidget) DragEnd() {
	b.release()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved only feeds hover feedback; drags arrive through Dragged.
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.pressed {
		return
	}
	b.engine.PointerMove(e.Position.X, e.Position.Y, 0)
}

// MouseOut ends a running gesture.
func (b *BoardWidget) MouseOut() {
	if b.pressed {
		b.pressed = false
		b.engine.PointerCancel()
	}
}

// Scrolled converts fyne's delta (positive is up) into the engine's
// browser-style delta (positive is down).
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.engine.Wheel(e.Position.X, e.Position.Y, -e.Scrolled.DX, -e.Scrolled.DY, b.ctrl)
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	return cursorFor(b.engine.Cursor())
}

func (b *BoardWidget) release() {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.engine.PointerUp()
}

// cursorFor maps engine feedback onto the closest fyne cursor. fyne has no
// diagonal or grab cursors.
func cursorFor(c engine.Cursor) desktop.Cursor {
	switch c {
	case engine.CursorCrosshair:
		return desktop.CrosshairCursor
	case engine.CursorText:
		return desktop.TextCursor
	case engine.CursorGrab, engine.CursorGrabbing:
		return desktop.PointerCursor
	case engine.CursorResizeNWSE:
		return desktop.HResizeCursor
	case engine.CursorResizeNESW:
		return desktop.VResizeCursor
	}
	return desktop.DefaultCursor
}
