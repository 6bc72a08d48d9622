package engine

import "SketchBoard/internal/geom"

// SetText replaces the content of the open text entry.
func (e *Engine) SetText(s string) {
	if e.text == nil || e.text.Text == s {
		return
	}
	e.text.Text = s
	e.notify(ChangeText)
}

// CommitText closes the open entry, adding a text shape when it holds any
// text.
func (e *Engine) CommitText() {
	e.notify(e.commitText())
}

// CancelText closes the open entry without adding anything.
func (e *Engine) CancelText() {
	if e.text == nil {
		return
	}
	e.text = nil
	e.notify(ChangeText | e.leaveTextMode())
}

func (e *Engine) commitText() Change {
	if e.text == nil {
		return 0
	}
	entry := *e.text
	e.text = nil
	c := ChangeText | e.leaveTextMode()
	if entry.Text == "" {
		return c
	}
	sh := geom.NewTextShape(entry.At, entry.Text, e.color, e.size)
	if sh, ok := e.scene.AddShape(sh); ok {
		e.log.Debug("text committed", "id", sh.ID, "len", len(entry.Text))
		c |= ChangeScene
	}
	return c
}

func (e *Engine) leaveTextMode() Change {
	if e.mode != TextEditing {
		return 0
	}
	return e.setMode(Idle)
}
