// Package export turns a render frame into shareable files: a PNG snapshot
// and a single-page PDF that embeds it.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gogpu/gg"

	"SketchBoard/internal/logging"
	"SketchBoard/internal/render"
)

// DefaultScale is the snapshot resolution relative to the logical viewport.
const DefaultScale float32 = 2

var (
	ErrEmptyFrame    = errors.New("export: frame has no size")
	ErrUnknownFormat = errors.New("export: unknown file format")
)

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Snapshot renders f at scale times the logical size width x height and
// returns the PNG encoding.
func Snapshot(r *render.Renderer, f render.Frame, width, height, scale float32) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	w, h := int(math32.Ceil(width*scale)), int(math32.Ceil(height*scale))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyFrame
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	f.PixelScale = scale
	r.Render(dc, f)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	logging.For("export").Debug("snapshot rendered", "width", w, "height", h)
	return buf.Bytes(), nil
}

// Encode produces the file contents for format from a PNG snapshot whose
// logical size is width x height.
func Encode(format Format, png []byte, width, height float32) ([]byte, error) {
	switch format {
	case FormatPNG:
		return png, nil
	case FormatPDF:
		return PDF(png, width, height)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile encodes a snapshot according to the path's extension and writes
// it to disk.
func WriteFile(path string, png []byte, width, height float32) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, png, width, height)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logging.For("export").Info("export written", "path", path, "format", format, "bytes", len(data))
	return nil
}
