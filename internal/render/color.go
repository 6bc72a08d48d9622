package render

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteNames lists the named colours in toolbar order.
var PaletteNames = []string{"black", "red", "green", "blue", "yellow", "orange", "purple", "gray"}

// Named colours offered by the palette. Anything else must be a hex string.
var palette = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#e03131",
	"green":  "#2f9e44",
	"blue":   "#1971c2",
	"yellow": "#f08c00",
	"orange": "#e8590c",
	"purple": "#9c36b5",
	"gray":   "#868e96",
}

// ParseColor resolves a palette name or hex string. Unparseable input
// falls back to black.
func ParseColor(s string) color.NRGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := palette[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// ValidColor reports whether s parses without falling back.
func ValidColor(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := palette[s]; ok {
		return true
	}
	_, err := colorful.Hex(s)
	return err == nil
}

func withAlpha(c color.NRGBA, a float32) color.NRGBA {
	c.A = uint8(float32(c.A) * a)
	return c
}
