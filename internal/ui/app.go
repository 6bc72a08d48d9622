package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/export"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// Options sizes and titles the board window.
type Options struct {
	Title       string
	Width       float32
	Height      float32
	ExportScale float32
}

// textEntry is the inline editor for text shapes. Losing focus commits.
type textEntry struct {
	widget.Entry
	onBlur func()
}

func newTextEntry() *textEntry {
	e := &textEntry{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *textEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.onBlur != nil {
		e.onBlur()
	}
}

// Board bundles the widgets of one board window.
type Board struct {
	Window  fyne.Window
	Widget  *BoardWidget
	Toolbar *Toolbar

	entry   *textEntry
	shownAt state.Point
	overlay *fyne.Container
	opts    Options
}

// NewWindow builds the board window around eng.
func NewWindow(a fyne.App, eng *engine.Engine, r *render.Renderer, opts Options) *Board {
	w := a.NewWindow(opts.Title)
	w.Resize(fyne.NewSize(opts.Width, opts.Height))

	b := &Board{
		Window:  w,
		Widget:  NewBoardWidget(eng, r),
		Toolbar: NewToolbar(eng),
		entry:   newTextEntry(),
		opts:    opts,
	}
	b.Toolbar.OnExport = b.showExport

	b.entry.OnChanged = eng.SetText
	b.entry.OnSubmitted = func(string) { eng.CommitText() }
	b.entry.onBlur = b.blur
	b.entry.Hide()
	b.overlay = container.NewWithoutLayout(b.entry)
	eng.Observe(func(c engine.Change) {
		if c.Has(engine.ChangeText) || c.Has(engine.ChangeViewport) {
			b.syncEntry()
		}
	})

	b.bindKeys()
	w.SetContent(container.NewBorder(b.Toolbar.Object(), nil, nil, nil, container.NewStack(b.Widget, b.overlay)))
	return b
}

// syncEntry shows the inline editor over the open text entry, if any.
func (b *Board) syncEntry() {
	eng := b.Widget.Engine()
	entry, ok := eng.Text()
	if !ok {
		if b.entry.Visible() {
			b.entry.onBlur = nil
			b.entry.SetText("")
			b.entry.Hide()
			b.entry.onBlur = b.blur
		}
		return
	}
	x, y := eng.Viewport().WorldToScreen(entry.At.X, entry.At.Y)
	size := fyne.NewSize(180, b.entry.MinSize().Height)
	b.entry.Resize(size)
	b.entry.Move(fyne.NewPos(x, y-size.Height/2))
	if !b.entry.Visible() || entry.At != b.shownAt {
		b.shownAt = entry.At
		b.entry.SetText(entry.Text)
		b.entry.Show()
		b.Window.Canvas().Focus(b.entry)
	}
}

// blur commits the entry when focus moves elsewhere. A click on the board
// already commits through the engine, so blurs caused by it are ignored.
func (b *Board) blur() {
	if b.Widget.pressed {
		return
	}
	b.Widget.Engine().CommitText()
}

// bindKeys routes window key edges into the engine. Ctrl is tracked here
// for wheel zoom.
func (b *Board) bindKeys() {
	eng := b.Widget.Engine()
	c := b.Window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		eng.Undo()
	})

	dc, ok := c.(desktop.Canvas)
	if !ok {
		return
	}
	dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
			b.Widget.SetCtrl(true)
		default:
			if k, ok := keyFor(ev.Name); ok {
				eng.KeyDown(k)
			}
		}
	})
	dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
			b.Widget.SetCtrl(false)
		default:
			if k, ok := keyFor(ev.Name); ok {
				eng.KeyUp(k)
			}
		}
	})
}

func keyFor(name fyne.KeyName) (engine.Key, bool) {
	switch name {
	case fyne.KeySpace:
		return engine.KeySpace, true
	case fyne.KeyReturn, fyne.KeyEnter:
		return engine.KeyEnter, true
	case fyne.KeyEscape:
		return engine.KeyEscape, true
	case fyne.KeyDelete, fyne.KeyBackspace:
		return engine.KeyDelete, true
	}
	return "", false
}

// showExport asks for a .png or .pdf destination and writes a snapshot.
func (b *Board) showExport() {
	eng := b.Widget.Engine()
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, b.Window)
			return
		}
		if writer == nil {
			return
		}
		if err := b.writeExport(eng, writer); err != nil {
			b.Widget.log.Error("export failed", "uri", writer.URI().String(), "err", err)
			dialog.ShowError(err, b.Window)
		}
	}, b.Window)
	save.SetFileName("board.png")
	save.Show()
}

func (b *Board) writeExport(eng *engine.Engine, writer fyne.URIWriteCloser) (err error) {
	defer func() {
		if cerr := writer.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()
	format, err := export.FormatOf(filepath.Base(writer.URI().Path()))
	if err != nil {
		return err
	}
	png, err := eng.Export(b.opts.ExportScale)
	if err != nil {
		return err
	}
	w, h := eng.ViewportSize()
	data, err := export.Encode(format, png, w, h)
	if err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	b.Widget.log.Info("export written", "uri", writer.URI().String(), "bytes", len(data))
	return nil
}
