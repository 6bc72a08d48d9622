package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Name     string
	Color    color.Color
	Active   bool
	OnTapped func(string)

	border *canvas.Rectangle
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, Color: render.ParseColor(name), OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	s.border = canvas.NewRectangle(color.Transparent)
	s.applyBorder()
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) setActive(on bool) {
	if s.Active == on {
		return
	}
	s.Active = on
	if s.border != nil {
		s.applyBorder()
		s.border.Refresh()
	}
}

func (s *colorSwatch) applyBorder() {
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
	if s.Active {
		s.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		s.border.StrokeWidth = 3
	}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// Toolbar is the row of board controls. It mirrors the engine's toolbar
// settings and keeps itself in sync through the engine's change feed.
type Toolbar struct {
	engine *engine.Engine

	tools    map[engine.Tool]*widget.Button
	swatches []*colorSwatch
	width    *widget.Slider
	brush    *widget.Select
	erase    *widget.Check

	// OnExport is invoked by the export button.
	OnExport func()

	object fyne.CanvasObject
}

// NewToolbar builds the controls for eng.
func NewToolbar(eng *engine.Engine) *Toolbar {
	t := &Toolbar{engine: eng, tools: make(map[engine.Tool]*widget.Button)}

	toolBox := container.NewHBox()
	for _, tool := range engine.Tools {
		btn := widget.NewButtonWithIcon(toolLabel(tool), toolIcon(tool), func() { eng.SetTool(tool) })
		t.tools[tool] = btn
		toolBox.Add(btn)
	}

	colorBox := container.NewHBox()
	for _, name := range render.PaletteNames {
		sw := newColorSwatch(name, eng.SetColor)
		t.swatches = append(t.swatches, sw)
		colorBox.Add(sw)
	}

	t.width = widget.NewSlider(float64(engine.MinWidth), float64(engine.MaxWidth))
	t.width.Step = 1
	t.width.OnChanged = func(v float64) { eng.SetWidth(float32(v)) }
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), t.width)

	brushes := make([]string, len(state.Brushes))
	for i, b := range state.Brushes {
		brushes[i] = string(b)
	}
	t.brush = widget.NewSelect(brushes, func(s string) { eng.SetBrush(state.BrushProfile(s)) })

	t.erase = widget.NewCheck("Erase", eng.SetEraseMode)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { eng.Undo() }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { eng.Delete() }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if t.OnExport != nil {
				t.OnExport()
			}
		}),
	)

	t.object = container.NewHBox(
		toolBox,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		t.brush,
		t.erase,
		layout.NewSpacer(),
		actions,
	)

	t.sync()
	eng.Observe(func(c engine.Change) {
		if c.Has(engine.ChangeTool) {
			t.sync()
		}
	})
	return t
}

// Object returns the toolbar's canvas object.
func (t *Toolbar) Object() fyne.CanvasObject { return t.object }

// sync copies the engine's settings into the controls.
func (t *Toolbar) sync() {
	for tool, btn := range t.tools {
		imp := widget.MediumImportance
		if tool == t.engine.Tool() && !t.engine.EraseMode() {
			imp = widget.HighImportance
		}
		if btn.Importance != imp {
			btn.Importance = imp
			btn.Refresh()
		}
	}
	for _, sw := range t.swatches {
		sw.setActive(strings.EqualFold(sw.Name, t.engine.Color()))
	}
	if w := float64(t.engine.Width()); t.width.Value != w {
		t.width.SetValue(w)
	}
	if b := string(t.engine.Brush()); t.brush.Selected != b {
		t.brush.SetSelected(b)
	}
	if t.erase.Checked != t.engine.EraseMode() {
		t.erase.SetChecked(t.engine.EraseMode())
	}
}

func toolLabel(t engine.Tool) string {
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

func toolIcon(t engine.Tool) fyne.Resource {
	switch t {
	case engine.ToolPen:
		return theme.DocumentCreateIcon()
	case engine.ToolSelect:
		return theme.ZoomFitIcon()
	case engine.ToolText:
		return theme.ContentPasteIcon()
	}
	return nil
}
