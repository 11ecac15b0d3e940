package state

import (
	"chartdeck/internal/catalog"
	"chartdeck/internal/stats"
)

type Page int

const (
	PageSlides Page = iota
	PageData        // data preview of the current slide
	PageHelp
	PageError // construction failed, nothing is bound
)

// AppState is the snapshot the views draw from. The controller remains the
// source of truth; the model copies what it needs after every trigger.
type AppState struct {
	CurrentPage Page
	Err         error

	Catalog    string
	Cursor     int
	Total      int
	Counter    string
	Descriptor catalog.Descriptor
	Renderer   string
	Fallback   bool
	RenderErr  error

	Stats        []stats.Summary
	StatsIndex   int
	StatsLoading bool
	StatsErr     error
}
