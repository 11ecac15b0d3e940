package components

import (
	"fmt"
	"math"
	"strings"

	"chartdeck/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Indicator shows the slide position. Anim follows Cursor through a spring
// in the main model, so the highlight glides between dots.
type Indicator struct {
	Total  int
	Cursor int
	Anim   float64
	width  int
}

func (ind *Indicator) SetSize(width, _ int) { ind.width = width }

// DotZone is the bubblezone id of the dot for slide i.
func DotZone(i int) string { return fmt.Sprintf("slide_%d", i) }

func (ind *Indicator) View() string {
	if ind.Total <= 0 {
		return ""
	}
	if ind.width > 0 && ind.Total*2 > ind.width {
		return ind.track()
	}

	dots := make([]string, ind.Total)
	for i := range dots {
		dist := math.Abs(float64(i) - ind.Anim)
		color := styles.BaseColor
		glyph := "○"
		if dist < 0.5 {
			color = styles.BrandColor
			glyph = "●"
		} else if dist < 1.0 {
			color = lipgloss.Color("#aaa")
		}
		dot := lipgloss.NewStyle().Foreground(color).Render(glyph)
		dots[i] = zone.Mark(DotZone(i), dot)
	}
	return strings.Join(dots, " ")
}

// track is used when the dots do not fit.
func (ind *Indicator) track() string {
	w := ind.width - 2
	if w < 3 {
		w = 3
	}
	pos := 0
	if ind.Total > 1 {
		pos = int(math.Round(ind.Anim / float64(ind.Total-1) * float64(w-1)))
	}
	pos = max(0, min(pos, w-1))
	left := strings.Repeat("─", pos)
	right := strings.Repeat("─", w-1-pos)
	marker := lipgloss.NewStyle().Foreground(styles.BrandColor).Render("◆")
	return "[" + left + marker + right + "]"
}
