package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

func snapshot(t *testing.T, w, h, scale float32) []byte {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	scene := state.NewScene()
	scene.AddStroke(state.Stroke{
		Points: []state.Point{state.NewPoint(5, 5, 0), state.NewPoint(40, 30, 0)},
		Color:  "blue",
		Width:  3,
		Brush:  state.BrushNormal,
	})
	data, err := Snapshot(r, render.Frame{Scene: scene, Viewport: state.NewViewport()}, w, h, scale)
	require.NoError(t, err)
	return data
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"board.png", FormatPNG, false},
		{"/tmp/Board.PDF", FormatPDF, false},
		{"board.svg", "", true},
		{"board", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotSize(t *testing.T) {
	for _, tt := range []struct {
		scale float32
		wantW int
		wantH int
		w, h  float32
	}{
		{2, 200, 120, 100, 60},
		{0, 200, 120, 100, 60},
		{1.5, 151, 90, 100.5, 60},
	} {
		cfg, err := png.DecodeConfig(bytes.NewReader(snapshot(t, tt.w, tt.h, tt.scale)))
		require.NoError(t, err)
		assert.Equal(t, tt.wantW, cfg.Width)
		assert.Equal(t, tt.wantH, cfg.Height)
	}
}

func TestSnapshotEmptyFrame(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)
	defer r.Close()
	_, err = Snapshot(r, render.Frame{Scene: state.NewScene()}, 0, 50, 2)
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestPDF(t *testing.T) {
	data, err := PDF(snapshot(t, 80, 40, 2), 80, 40)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, err = PDF(nil, 0, 40)
	assert.ErrorIs(t, err, ErrEmptyFrame)
	_, err = PDF([]byte("not a png"), 80, 40)
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	img := snapshot(t, 30, 30, 1)
	got, err := Encode(FormatPNG, img, 30, 30)
	require.NoError(t, err)
	assert.Equal(t, img, got)

	_, err = Encode("gif", img, 30, 30)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := snapshot(t, 50, 50, 1)

	for _, name := range []string{"out.png", "out.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, img, 50, 50))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "out.bmp"), img, 50, 50), ErrUnknownFormat)
}
