package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"chartdeck/internal/catalog"
)

// seriesColor picks the series color, cycling the palette when unset.
func seriesColor(s catalog.Series, i int) string {
	if s.Color != "" {
		return s.Color
	}
	return catalog.Palette[i%len(catalog.Palette)]
}

// parseHex accepts #rgb, #rrggbb and #rrggbbaa.
func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustHex(s string) color.RGBA {
	c, err := parseHex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

func toHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
