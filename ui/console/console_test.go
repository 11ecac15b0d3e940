package console

import (
	"bytes"
	"strings"
	"testing"

	"chartdeck/internal/output"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{output.StatusWarn, colorYellow},
		{output.StatusOK, colorGreen},
		{"", colorReset},
		{"UNKNOWN", colorGreen},
	}

	for _, tt := range tests {
		result := colorFor(tt.status)
		if result != tt.expected {
			t.Errorf("colorFor(%q) = %q; want %q", tt.status, result, tt.expected)
		}
	}
}

func TestPrint(t *testing.T) {
	view := output.ListingView{
		Catalog: "full",
		Sections: []output.Section{
			{
				ID:    "06-pie",
				Title: "06 Pie · Revenue mix",
				Items: []output.Item{
					{Key: "series", Label: "Series", Value: 1},
					{Key: "points", Label: "Points", Value: 5},
					{Key: "renderer", Label: "Renderer", Note: "fallback", Status: output.StatusWarn},
					{Key: "series_Share", Label: "Share", Value: 20, Note: "n=5 sd=7.9 [10, 30]"},
					{Key: "series_a very long series label indeed", Label: "a very long series label indeed", Note: "empty"},
				},
			},
		},
		TotalPoints: 5,
		Fallbacks:   1,
	}

	var buf bytes.Buffer
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Print panicked: %v", r)
		}
	}()
	Print(&buf, view)

	out := buf.String()
	for _, want := range []string{"CHARTDECK CATALOG: FULL", "06 Pie · Revenue mix", "20.00  n=5", "a very long serie...", "Fallback: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	Errorf(&buf, "no renderer %q", "gpu")
	if !strings.Contains(buf.String(), `no renderer "gpu"`) {
		t.Errorf("Unexpected error line %q", buf.String())
	}
}
