package output

import (
	"context"
	"errors"
	"testing"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"
	"chartdeck/internal/stats"
)

type mockSummarizer struct{ err error }

func (m mockSummarizer) Summarize(_ context.Context, d catalog.Descriptor) ([]stats.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	sd := 0.5
	out := make([]stats.Summary, len(d.Config.Series))
	for i, s := range d.Config.Series {
		out[i] = stats.Summary{Series: s.Label, Count: 3, Mean: 2, StdDev: &sd, Min: 1, Max: 3}
	}
	return out, nil
}

func TestRunPipeline(t *testing.T) {
	src, err := catalog.Builtin(catalog.VariantFull)
	if err != nil {
		t.Fatalf("Expected builtin catalog, got %v", err)
	}

	view, err := RunPipeline(context.Background(), src, render.NewTerminal(),
		render.Surface{Width: 60, Height: 16, Terminal: true}, mockSummarizer{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(view.Sections) != 10 {
		t.Fatalf("Expected 10 sections, got %d", len(view.Sections))
	}
	if view.Catalog != "full" {
		t.Errorf("Expected catalog 'full', got '%s'", view.Catalog)
	}

	// pie and radar have no terminal form
	if view.Fallbacks != 2 {
		t.Errorf("Expected 2 fallbacks, got %d", view.Fallbacks)
	}
	pie := view.SectionByID("06-pie")
	if pie == nil {
		t.Fatal("Expected section 06-pie")
	}
	if it := pie.ItemByKey("renderer"); it == nil || it.Status != StatusWarn {
		t.Errorf("Expected pie renderer item to warn, got %+v", it)
	}
	line := view.SectionByID("01-line")
	if it := line.ItemByKey("renderer"); it == nil || it.Status != StatusOK {
		t.Errorf("Expected line renderer item to be ok, got %+v", it)
	}
}

func TestRunPipeline_NoProbeNoStats(t *testing.T) {
	src, _ := catalog.Builtin(catalog.VariantSimple)
	view, err := RunPipeline(context.Background(), src, nil, render.Surface{}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, sec := range view.Sections {
		if len(sec.Items) != 2 {
			t.Errorf("Expected only series and points items in %s, got %d", sec.ID, len(sec.Items))
		}
	}
}

func TestRunPipeline_Errors(t *testing.T) {
	failing := catalog.SourceFunc(func() (*catalog.Catalog, error) { return nil, catalog.ErrEmptyCatalog })
	if _, err := RunPipeline(context.Background(), failing, nil, render.Surface{}, nil); !errors.Is(err, catalog.ErrEmptyCatalog) {
		t.Errorf("Expected ErrEmptyCatalog, got %v", err)
	}

	src, _ := catalog.Builtin(catalog.VariantSimple)
	if _, err := RunPipeline(context.Background(), src, nil, render.Surface{}, mockSummarizer{err: errors.New("db down")}); err == nil {
		t.Error("Expected summarizer error to propagate")
	}
}

func TestSeriesItem(t *testing.T) {
	if it := seriesItem(stats.Summary{Series: "a"}); it.Note != "empty" {
		t.Errorf("Expected empty note, got %q", it.Note)
	}
	it := seriesItem(stats.Summary{Series: "a", Count: 1, Mean: 4, Min: 4, Max: 4})
	if it.Value != 4 || it.Note != "n=1 [4, 4]" {
		t.Errorf("Expected mean 4 and note 'n=1 [4, 4]', got %v %q", it.Value, it.Note)
	}
}
