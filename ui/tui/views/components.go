package views

import (
	"fmt"
	"strings"

	"chartdeck/internal/render"
	"chartdeck/ui/tui/state"
	"chartdeck/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ColorForRenderer colors the renderer badge: green for the primary,
// gold for the fallback drawer, red when nothing drew the slide.
func ColorForRenderer(s state.AppState) lipgloss.Style {
	sStyle := styles.StatusStyle
	if s.Renderer == "" {
		return sStyle.Foreground(lipgloss.Color("196")) // Red
	} else if s.Fallback {
		return sStyle.Foreground(lipgloss.Color("220")) // Gold
	}
	return sStyle.Foreground(lipgloss.Color("46")) // Green
}

func renderHeader(s state.AppState, width int) string {
	text := fmt.Sprintf("CHARTDECK // %s CATALOG", strings.ToUpper(s.Catalog))
	if s.Counter != "" {
		text += "   " + s.Counter
	}
	return styles.HeaderStyle.Width(max(width, lipgloss.Width(text)+4)).Render(text)
}

func rendererBadge(s state.AppState) string {
	name := s.Renderer
	switch {
	case name == "":
		name = render.NameNone
	case s.Fallback:
		name += " (fallback)"
	}
	return ColorForRenderer(s).Render("● " + name)
}

func card(title, body string, width int) string {
	style := styles.CardStyle
	if width > 4 {
		style = style.Width(width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(styles.BrandColor).Render(title),
		body,
	))
}
