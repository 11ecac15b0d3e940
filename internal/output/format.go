package output

import (
	"fmt"

	"chartdeck/internal/catalog"
	"chartdeck/internal/stats"
)

// Item statuses
const (
	StatusOK   = "OK"
	StatusWarn = "WARN" // the primary renderer fails, the fallback draws it
)

// UI/view-model types (no printing here)
type Item struct {
	Key    string
	Label  string
	Value  float64
	Unit   string
	Status string
	Note   string
}

type Section struct {
	ID    string // file stem, e.g. 03-hbar
	Title string
	Items []Item
}

type ListingView struct {
	Catalog     string
	Sections    []Section
	TotalPoints int
	Fallbacks   int
}

// Probe is the outcome of drawing one descriptor with the primary renderer.
type Probe struct {
	Renderer string
	Err      error
}

// BuildListing converts descriptors, probes and summaries into UI-ready
// sections. probes and sums are indexed like ds and may be nil.
func BuildListing(name string, ds []catalog.Descriptor, probes []Probe, sums [][]stats.Summary) ListingView {
	view := ListingView{Catalog: name}

	for i, d := range ds {
		sec := Section{
			ID:    fmt.Sprintf("%02d-%s", i+1, d.Kind),
			Title: fmt.Sprintf("%02d %s · %s", i+1, d.Kind.Title(), d.Title()),
		}
		sec.Items = append(sec.Items,
			Item{Key: "series", Label: "Series", Value: float64(len(d.Config.Series))},
			Item{Key: "points", Label: "Points", Value: float64(d.PointCount())},
		)
		view.TotalPoints += d.PointCount()

		if i < len(probes) && probes[i].Renderer != "" {
			it := Item{Key: "renderer", Label: "Renderer", Note: probes[i].Renderer, Status: StatusOK}
			if probes[i].Err != nil {
				it.Status = StatusWarn
				it.Note = "fallback"
				view.Fallbacks++
			}
			sec.Items = append(sec.Items, it)
		}

		if i < len(sums) {
			for _, s := range sums[i] {
				sec.Items = append(sec.Items, seriesItem(s))
			}
		}
		view.Sections = append(view.Sections, sec)
	}
	return view
}

func seriesItem(s stats.Summary) Item {
	it := Item{Key: "series_" + s.Series, Label: s.Series}
	if s.Count == 0 {
		it.Note = "empty"
		return it
	}
	it.Value = s.Mean
	it.Note = fmt.Sprintf("n=%d", s.Count)
	if s.StdDev != nil {
		it.Note += fmt.Sprintf(" sd=%.3g", *s.StdDev)
	}
	it.Note += fmt.Sprintf(" [%.3g, %.3g]", s.Min, s.Max)
	return it
}

func (v ListingView) SectionByID(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

func (s Section) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}
