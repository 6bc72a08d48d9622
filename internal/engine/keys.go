package engine

// KeyDown handles a key press. Keys typed into an open text entry belong
// to the entry, except Enter and Escape which close it.
func (e *Engine) KeyDown(k Key) {
	switch k {
	case KeyEnter:
		e.CommitText()
	case KeyEscape:
		if e.text != nil {
			e.CancelText()
			return
		}
		if e.mode == Idle && e.hasSelection() {
			e.scene.ClearSelection()
			e.notify(ChangeSelection)
		}
	case KeySpace:
		if e.text != nil || e.spaceHeld {
			return
		}
		e.spaceHeld = true
		e.notify(ChangeOverlay)
	case KeyDelete:
		if e.text != nil || e.mode != Idle {
			return
		}
		e.Delete()
	}
}

// KeyUp handles a key release. Releasing space does not end a pan already
// in progress.
func (e *Engine) KeyUp(k Key) {
	if k == KeySpace && e.spaceHeld {
		e.spaceHeld = false
		e.notify(ChangeOverlay)
	}
}

// SpaceHeld reports whether the pan modifier is down.
func (e *Engine) SpaceHeld() bool { return e.spaceHeld }
