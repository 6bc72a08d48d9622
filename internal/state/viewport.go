package state

// Zoom limits and the per-notch wheel step.
const (
	MinZoom  float32 = 0.1
	MaxZoom  float32 = 3.0
	ZoomStep float32 = 0.1
)

// Vec is a plain 2D offset.
type Vec struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Viewport maps world space to screen space: screen = world*Zoom + Pan.
type Viewport struct {
	Zoom float32 `json:"zoom"`
	Pan  Vec     `json:"pan"`
}

// NewViewport returns the identity transform.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float32) float32 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// Scale returns the effective zoom, treating a zero value as 1.
func (v Viewport) Scale() float32 {
	return v.zoom()
}

// ScreenToWorld inverts the transform.
func (v Viewport) ScreenToWorld(x, y float32) (float32, float32) {
	z := v.zoom()
	return (x - v.Pan.X) / z, (y - v.Pan.Y) / z
}

// WorldToScreen applies the transform.
func (v Viewport) WorldToScreen(x, y float32) (float32, float32) {
	z := v.zoom()
	return x*z + v.Pan.X, y*z + v.Pan.Y
}

// PanBy shifts the pan by a raw screen delta.
func (v Viewport) PanBy(dx, dy float32) Viewport {
	v.Pan.X += dx
	v.Pan.Y += dy
	return v
}

// ZoomAt changes the zoom by delta, clamped, keeping the screen point
// (cx, cy) over the same world point.
func (v Viewport) ZoomAt(cx, cy, delta float32) Viewport {
	old := v.zoom()
	next := ClampZoom(old + delta)
	ratio := next / old
	v.Pan.X = cx - (cx-v.Pan.X)*ratio
	v.Pan.Y = cy - (cy-v.Pan.Y)*ratio
	v.Zoom = next
	return v
}

// zoom guards against a zero-value Viewport.
func (v Viewport) zoom() float32 {
	if v.Zoom == 0 {
		return 1
	}
	return ClampZoom(v.Zoom)
}
