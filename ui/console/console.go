package console

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"chartdeck/internal/output"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const labelWidth = 22

// Print renders the catalog listing to the writer in a compact format.
func Print(w io.Writer, view output.ListingView) {
	fmt.Fprintf(w, "%s%s %s%s\n", colorCyan, "■", "CHARTDECK CATALOG: "+strings.ToUpper(view.Catalog), colorReset)

	for _, sec := range view.Sections {
		fmt.Fprintf(w, "%s%s%s\n", colorCyan, "─ "+sec.Title, colorReset)

		for _, it := range sec.Items {
			color := colorFor(it.Status)

			label := it.Label
			if utf8.RuneCountInString(label) > labelWidth-2 {
				label = string([]rune(label)[:labelWidth-5]) + "..."
			}

			valStr := ""
			switch {
			case strings.HasPrefix(it.Key, "series_") && it.Note != "empty":
				valStr = fmt.Sprintf("%.2f  %s", it.Value, it.Note)
			case it.Note != "":
				valStr = it.Note
			default:
				valStr = fmt.Sprintf("%g%s", it.Value, it.Unit)
			}

			statusMarker := ""
			switch it.Status {
			case output.StatusOK:
				statusMarker = fmt.Sprintf(" %s✓%s", color, colorReset)
			case output.StatusWarn:
				statusMarker = fmt.Sprintf(" %s!%s", color, colorReset)
			}

			dots := strings.Repeat("·", labelWidth-utf8.RuneCountInString(label))

			// Format: "  Label............... ValueStatus"
			fmt.Fprintf(w, "  %s%s %s%s\n", label, colorCyan+dots+colorReset, valStr, statusMarker)
		}
	}

	fallbacks := ""
	if view.Fallbacks > 0 {
		fallbacks = fmt.Sprintf(" | %sFallback: %d%s", colorYellow, view.Fallbacks, colorReset)
	}
	fmt.Fprintf(w, "%s─ Summary%s: Charts: %d | Points: %d%s\n\n",
		colorCyan, colorReset, len(view.Sections), view.TotalPoints, fallbacks)
}

func colorFor(status string) string {
	switch status {
	case output.StatusWarn:
		return colorYellow
	case "":
		return colorReset
	default:
		return colorGreen
	}
}

// Errorf prints a red error line, for command failures.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
}
