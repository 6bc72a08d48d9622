package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const snapshotImage = "snapshot"

// PDF wraps a PNG snapshot into a single page sized to the logical
// viewport, one point per logical pixel. The page keeps the given
// dimensions; gofpdf only swaps them for landscape.
func PDF(png []byte, width, height float32) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyFrame
	}
	w, h := float64(width), float64(height)
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(snapshotImage, opts, bytes.NewReader(png))
	p.ImageOptions(snapshotImage, 0, 0, w, h, false, opts, 0, "")
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
