package render

import (
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Surface is the subset of the gg drawing context the pipeline needs.
// *gg.Context satisfies it.
type Surface interface {
	Width() int
	Height() int

	Push()
	Pop()
	Identity()
	Translate(x, y float64)
	Scale(x, y float64)

	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c gg.LineCap)
	SetLineJoin(j gg.LineJoin)
	SetDash(lengths ...float64)
	ClearDash()

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	ClearPath()
	DrawRectangle(x, y, w, h float64)
	DrawEllipse(x, y, rx, ry float64)
	Fill() error
	Stroke() error

	SetFont(face text.Face)
	DrawString(s string, x, y float64)
}

var _ Surface = (*gg.Context)(nil)
