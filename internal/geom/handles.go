package geom

import (
	"github.com/chewxy/math32"

	"SketchBoard/internal/state"
)

// Selection decoration sizes in world units. The hit box is larger than
// the drawn handle.
const (
	SelectionPadding float32 = 6
	HandleSize       float32 = 8
	HandleHitSize    float32 = 16
)

// Handle names a corner of the selection box.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

// Handles lists the corners in tie-break order.
var Handles = []Handle{HandleNW, HandleNE, HandleSW, HandleSE}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	}
	return "none"
}

// West reports whether the handle moves the left edge.
func (h Handle) West() bool { return h == HandleNW || h == HandleSW }

// North reports whether the handle moves the top edge.
func (h Handle) North() bool { return h == HandleNW || h == HandleNE }

// SelectionBox is the padded box the decoration and handles are drawn on.
func SelectionBox(e state.Element) Rect {
	return BoundsOf(e).Expand(SelectionPadding)
}

// HandlePoint returns the centre of a handle on box r.
func HandlePoint(r Rect, h Handle) (float32, float32) {
	switch h {
	case HandleNW:
		return r.X, r.Y
	case HandleNE:
		return r.MaxX(), r.Y
	case HandleSW:
		return r.X, r.MaxY()
	case HandleSE:
		return r.MaxX(), r.MaxY()
	}
	return r.Center()
}

// ResizeHandleAt returns the first corner handle whose hit box contains
// (x, y), or HandleNone.
func ResizeHandleAt(x, y float32, e state.Element) Handle {
	r := SelectionBox(e)
	half := HandleHitSize / 2
	for _, h := range Handles {
		hx, hy := HandlePoint(r, h)
		if math32.Abs(x-hx) <= half && math32.Abs(y-hy) <= half {
			return h
		}
	}
	return HandleNone
}

// ResizeRect moves the edges of r named by h by (dx, dy).
func ResizeRect(r Rect, h Handle, dx, dy float32) Rect {
	minX, minY, maxX, maxY := r.X, r.Y, r.MaxX(), r.MaxY()
	if h.West() {
		minX += dx
	} else {
		maxX += dx
	}
	if h.North() {
		minY += dy
	} else {
		maxY += dy
	}
	return RectFromPoints(pt(minX, minY), pt(maxX, maxY))
}

// RescalePoints maps every point's relative position inside from onto to.
// An axis with zero extent in from is translated rather than scaled.
func RescalePoints(points []state.Point, from, to Rect) []state.Point {
	out := make([]state.Point, len(points))
	for i, p := range points {
		out[i] = state.Point{
			X:        remap(p.X, from.X, from.W, to.X, to.W),
			Y:        remap(p.Y, from.Y, from.H, to.Y, to.H),
			Pressure: p.Pressure,
		}
	}
	return out
}

func remap(v, origin, extent, newOrigin, newExtent float32) float32 {
	if extent == 0 {
		return newOrigin + (v - origin)
	}
	return newOrigin + (v-origin)/extent*newExtent
}

// ResizeShape moves only the anchor coordinates named by h: the anchor that
// currently forms the west/north edge takes the west/north handles, the
// other anchor the east/south ones.
func ResizeShape(sh *state.Shape, h Handle, dx, dy float32) {
	if h == HandleNone {
		return
	}
	startIsWest := sh.Start.X <= sh.End.X
	startIsNorth := sh.Start.Y <= sh.End.Y
	if h.West() == startIsWest {
		sh.Start.X += dx
	} else {
		sh.End.X += dx
	}
	if h.North() == startIsNorth {
		sh.Start.Y += dy
	} else {
		sh.End.Y += dy
	}
}
