package components

import (
	"errors"
	"strings"
	"testing"

	"chartdeck/internal/catalog"
	"chartdeck/internal/slideshow"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

func TestMarkdown(t *testing.T) {
	info := slideshow.Info{
		Kind:        catalog.KindPie,
		Title:       "Revenue mix",
		Description: "Parts of a whole.",
		Scenarios:   []string{"market share"},
		Renderer:    "fallback",
		Fallback:    true,
		Err:         errors.New("pie: unsupported"),
	}
	md := Markdown(info)
	for _, want := range []string{"## Revenue mix", "`fallback`", "- market share", "Simplified drawing"} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q, got:\n%s", want, md)
		}
	}

	info.Fallback = false
	info.Renderer = ""
	if md := Markdown(info); !strings.Contains(md, "could not be drawn") {
		t.Errorf("Expected failure note without fallback, got:\n%s", md)
	}
}

func TestInfoPanel(t *testing.T) {
	p := NewInfoPanel("notty", 40)
	p.ShowInfo(slideshow.Info{Kind: catalog.KindLine, Title: "GMV growth"})
	p.ShowCounter("1/10")

	if p.Counter() != "1/10" {
		t.Errorf("Expected counter 1/10, got %s", p.Counter())
	}
	if !strings.Contains(p.View(), "GMV growth") {
		t.Errorf("Expected rendered title, got %q", p.View())
	}
	p.SetSize(60, 0)
	if !strings.Contains(p.View(), "GMV growth") {
		t.Error("Expected the panel to re-render after a resize")
	}
}

func TestIndicator(t *testing.T) {
	zone.NewGlobal()
	defer zone.Close()

	ind := &Indicator{Total: 5, Cursor: 2, Anim: 2}
	ind.SetSize(40, 1)
	if got := strings.Count(zone.Scan(ind.View()), "●"); got != 1 {
		t.Errorf("Expected one highlighted dot, got %d", got)
	}

	ind = &Indicator{Total: 30, Cursor: 29, Anim: 29}
	ind.SetSize(20, 1)
	track := ind.View()
	if lipgloss.Width(track) != 20 {
		t.Errorf("Expected a 20 cell track, got %d", lipgloss.Width(track))
	}
	if !strings.HasSuffix(track, "]") || !strings.Contains(track, "◆") {
		t.Errorf("Unexpected track %q", track)
	}
}

func TestDataTable(t *testing.T) {
	cat, err := catalog.Full()
	if err != nil {
		t.Fatalf("Expected builtin catalog, got %v", err)
	}
	dt := NewDataTable()
	dt.Load(cat.At(7))
	if dt.Rows() != 5 {
		t.Errorf("Expected five-number rows for the box chart, got %d", dt.Rows())
	}
	if !strings.Contains(dt.View(), "median") {
		t.Error("Expected the median row to be visible")
	}

	dt.Load(cat.At(4))
	if dt.Rows() != 8 {
		t.Errorf("Expected 8 histogram bins, got %d", dt.Rows())
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{1.5, "1.5"},
		{2.0 / 3.0, "0.6667"},
		{"FY2013", "FY2013"},
		{7, "7"},
	}
	for _, tt := range tests {
		if got := Cell(tt.in); got != tt.want {
			t.Errorf("Cell(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
