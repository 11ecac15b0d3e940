package views

import (
	"chartdeck/ui/tui/state"
	"chartdeck/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

type SlidesView struct{}

// ChartWidth is the share of the screen given to the chart card; the info
// panel takes the rest.
func ChartWidth(width int) int {
	return width * 2 / 3
}

func (v SlidesView) Render(s state.AppState, props ViewProps) string {
	header := renderHeader(s, props.Width)

	chart := props.ChartView
	if chart == "" {
		chart = styles.CopyStyle.Render("Nothing could draw this chart.")
	}
	chartW := ChartWidth(props.Width)
	infoW := props.Width - chartW - 2

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		card(s.Descriptor.Title(), chart, chartW-4),
		card("About", props.InfoView, infoW-4),
	)

	prev := zone.Mark(PrevZone, styles.ButtonStyle.Render("◀ prev"))
	next := zone.Mark(NextZone, styles.ButtonStyle.Render("next ▶"))
	indicator := lipgloss.NewStyle().Padding(1, 2).Render(props.IndicatorView)
	controls := lipgloss.JoinHorizontal(lipgloss.Center, prev, indicator, next)

	status := lipgloss.NewStyle().PaddingLeft(2).Render(rendererBadge(s))
	footer := lipgloss.NewStyle().PaddingLeft(2).Render(props.HelpView)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		lipgloss.NewStyle().PaddingLeft(1).Render(controls),
		status,
		footer,
	))
}
