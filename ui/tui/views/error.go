package views

import (
	"errors"

	"chartdeck/internal/slideshow"
	"chartdeck/ui/tui/state"
	"chartdeck/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ErrorView is shown when the slideshow could not be built. No trigger is
// bound behind it; the only way out is quitting.
type ErrorView struct{}

func (v ErrorView) Render(s state.AppState, props ViewProps) string {
	title := "chartdeck could not start"
	hint := "Check the catalog and renderer settings, then run again."
	if errors.Is(s.Err, slideshow.ErrRendererUnavailable) {
		hint = "No chart renderer is available. Set render.primary to terminal or raster."
	}

	msg := "unknown error"
	if s.Err != nil {
		msg = s.Err.Error()
	}
	box := styles.ErrorStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render(title),
		"",
		msg,
		"",
		styles.CopyStyle.Render(hint),
		"",
		"Press q to quit",
	))
	if props.Width == 0 || props.Height == 0 {
		return box
	}
	return lipgloss.Place(props.Width, props.Height, lipgloss.Center, lipgloss.Center, box)
}
