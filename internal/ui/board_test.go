package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

func newBoard(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)
	r, err := render.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	b := NewBoardWidget(engine.New(nil), r)
	b.Resize(fyne.NewSize(200, 150))
	return b
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestBoardWidgetDraws(t *testing.T) {
	b := newBoard(t)
	w, h := b.Engine().ViewportSize()
	assert.Equal(t, float32(200), w)
	assert.Equal(t, float32(150), h)

	b.MouseDown(mouse(10, 10))
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 40)}, Dragged: fyne.NewDelta(0, 30)})
	b.MouseMoved(mouse(50, 50))
	b.DragEnd()
	b.MouseUp(mouse(10, 40))

	strokes := b.Engine().Scene().Strokes()
	require.Len(t, strokes, 1)
	assert.Len(t, strokes[0].Points, 2)

	img := b.draw(400, 300)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestBoardWidgetMouseOutEndsGesture(t *testing.T) {
	b := newBoard(t)
	b.MouseDown(mouse(0, 0))
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 0)}})
	b.MouseOut()
	assert.Equal(t, engine.Idle, b.Engine().State())
	assert.Len(t, b.Engine().Scene().Strokes(), 1)
}

func TestBoardWidgetScroll(t *testing.T) {
	b := newBoard(t)
	b.Scrolled(&fyne.ScrollEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}, Scrolled: fyne.NewDelta(0, -10)})
	assert.Equal(t, state.Vec{X: 0, Y: -10}, b.Engine().Viewport().Pan)

	b.SetCtrl(true)
	b.Scrolled(&fyne.ScrollEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}, Scrolled: fyne.NewDelta(0, 1)})
	assert.InDelta(t, 1.1, b.Engine().Viewport().Zoom, 1e-5)
}

func TestCursorFor(t *testing.T) {
	for c, want := range map[engine.Cursor]desktop.Cursor{
		engine.CursorDefault:    desktop.DefaultCursor,
		engine.CursorCrosshair:  desktop.CrosshairCursor,
		engine.CursorText:       desktop.TextCursor,
		engine.CursorGrab:       desktop.PointerCursor,
		engine.CursorGrabbing:   desktop.PointerCursor,
		engine.CursorResizeNWSE: desktop.HResizeCursor,
		engine.CursorResizeNESW: desktop.VResizeCursor,
	} {
		assert.Equal(t, want, cursorFor(c), c.String())
	}
}

func TestToolbarFollowsEngine(t *testing.T) {
	test.NewTempApp(t)
	eng := engine.New(nil)
	tb := NewToolbar(eng)

	test.Tap(tb.tools[engine.ToolSelect])
	assert.Equal(t, engine.ToolSelect, eng.Tool())
	assert.Equal(t, widget.HighImportance, tb.tools[engine.ToolSelect].Importance)

	eng.SetWidth(12)
	assert.Equal(t, float64(12), tb.width.Value)
	eng.SetBrush(state.BrushSketchy)
	assert.Equal(t, string(state.BrushSketchy), tb.brush.Selected)

	tb.erase.SetChecked(true)
	assert.True(t, eng.EraseMode())
	assert.Equal(t, widget.MediumImportance, tb.tools[engine.ToolSelect].Importance)

	test.Tap(tb.swatches[1])
	assert.Equal(t, render.PaletteNames[1], eng.Color())
	assert.True(t, tb.swatches[1].Active)
	assert.False(t, tb.swatches[0].Active)
}

func TestKeyFor(t *testing.T) {
	k, ok := keyFor(fyne.KeyReturn)
	assert.True(t, ok)
	assert.Equal(t, engine.KeyEnter, k)
	_, ok = keyFor(fyne.KeyA)
	assert.False(t, ok)
}

func TestTextEntryCommitsOnFocusLoss(t *testing.T) {
	a := test.NewTempApp(t)
	r, err := render.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	eng := engine.New(nil)
	b := NewWindow(a, eng, r, Options{Title: "board", Width: 400, Height: 300, ExportScale: 1})
	t.Cleanup(b.Window.Close)

	eng.SetTool(engine.ToolText)
	b.Widget.MouseDown(mouse(30, 40))
	b.Widget.MouseUp(mouse(30, 40))
	require.Equal(t, engine.TextEditing, eng.State())
	require.True(t, b.entry.Visible())
	assert.Equal(t, b.entry, b.Window.Canvas().Focused())

	test.Type(b.entry, "hi")
	entry, ok := eng.Text()
	require.True(t, ok)
	assert.Equal(t, "hi", entry.Text)

	b.Window.Canvas().Unfocus()
	shapes := eng.Scene().Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, "hi", shapes[0].Text)
	assert.Equal(t, engine.Idle, eng.State())
	assert.False(t, b.entry.Visible())
}
