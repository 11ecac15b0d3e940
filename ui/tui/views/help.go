package views

import (
	"chartdeck/ui/tui/state"
	"chartdeck/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type HelpView struct{}

func (v HelpView) Render(s state.AppState, props ViewProps) string {
	header := renderHeader(s, props.Width)
	body := card("Keys", props.HelpView, 0)
	mouse := styles.CopyStyle.Render("Click the prev and next buttons, or a dot, to move between slides.")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, lipgloss.NewStyle().PaddingLeft(2).Render(mouse))
}
