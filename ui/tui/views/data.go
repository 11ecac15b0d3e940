package views

import (
	"fmt"
	"strings"

	"chartdeck/ui/tui/state"
	"chartdeck/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type DataView struct{}

func (v DataView) Render(s state.AppState, props ViewProps) string {
	header := renderHeader(s, props.Width)

	data := card("Data · "+s.Descriptor.Title(), props.TableView, 0)

	var statsBody string
	switch {
	case s.StatsLoading:
		statsBody = props.SpinnerView + " computing with DuckDB..."
	case s.StatsErr != nil:
		statsBody = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s.StatsErr.Error())
	default:
		statsBody = StatsTable(s)
	}
	summary := card("Statistics", statsBody, 0)

	footer := lipgloss.NewStyle().PaddingLeft(2).Render(props.HelpView)
	return lipgloss.JoinVertical(lipgloss.Left, header, data, summary, footer)
}

// StatsTable lays out the loaded summaries, one row per series.
func StatsTable(s state.AppState) string {
	if len(s.Stats) == 0 {
		return styles.CopyStyle.Render("No series.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %6s %10s %10s %10s %10s", "series", "count", "mean", "std dev", "min", "max")
	for _, sum := range s.Stats {
		b.WriteString("\n")
		mean, lo, hi := "-", "-", "-"
		if sum.Count > 0 {
			mean, lo, hi = number(sum.Mean), number(sum.Min), number(sum.Max)
		}
		sd := "-"
		if sum.StdDev != nil {
			sd = number(*sum.StdDev)
		}
		fmt.Fprintf(&b, "%-16s %6d %10s %10s %10s %10s", truncate(sum.Series, 16), sum.Count, mean, sd, lo, hi)
	}
	return b.String()
}

func number(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
