package render

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const upperHalf = "▀"

// Blocks scales img to cols x rows*2 pixels and prints it as upper half
// blocks: the foreground is the top pixel of a cell, the background the
// bottom one. The result has exactly rows lines of cols cells.
func Blocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	w, h := Surface{Width: cols, Height: rows, Terminal: true}.PixelSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := toHex(dst.At(x, y))
			bottom := toHex(dst.At(x, y+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(upperHalf))
		}
	}
	return b.String()
}
