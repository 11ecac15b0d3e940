package views

import (
	"chartdeck/ui/tui/state"
)

// Render draws the page selected in s.
func Render(s state.AppState, props ViewProps) string {
	var v View
	switch s.CurrentPage {
	case state.PageError:
		v = ErrorView{}
	case state.PageData:
		v = DataView{}
	case state.PageHelp:
		v = HelpView{}
	default:
		v = SlidesView{}
	}
	return v.Render(s, props)
}
