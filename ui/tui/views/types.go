package views

import (
	"chartdeck/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height  int
	MouseX, MouseY int

	// Component States
	AnimCursor    float64
	SpinnerView   string
	ChartView     string
	InfoView      string
	IndicatorView string
	TableView     string
	HelpView      string
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}

// Zone ids of the clickable triggers.
const (
	PrevZone = "prev"
	NextZone = "next"
)
