package components

import (
	"fmt"

	"chartdeck/internal/catalog"
	"chartdeck/internal/export"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 16
)

// DataTable previews the values behind the current slide, laid out like
// the exported workbook sheet.
type DataTable struct {
	model  table.Model
	height int
}

func NewDataTable() *DataTable {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()

	return &DataTable{
		model:  table.New(table.WithFocused(false), table.WithStyles(s)),
		height: 10,
	}
}

// Load replaces columns and rows with the data of d.
func (t *DataTable) Load(d catalog.Descriptor) {
	data := export.DataTable(d)

	cols := make([]table.Column, len(data.Header))
	for i, h := range data.Header {
		cols[i] = table.Column{Title: h, Width: max(minColumnWidth, min(len(h)+2, maxColumnWidth))}
	}
	rows := make([]table.Row, len(data.Rows))
	for r, row := range data.Rows {
		cells := make(table.Row, len(cols))
		for c := range cols {
			if c < len(row) {
				cells[c] = Cell(row[c])
			}
			if w := len(cells[c]) + 2; w > cols[c].Width && w <= maxColumnWidth {
				cols[c].Width = w
			}
		}
		rows[r] = cells
	}

	// columns first, rows are validated against them
	t.model.SetRows(nil)
	t.model.SetColumns(cols)
	t.model.SetRows(rows)
	t.model.SetHeight(min(t.height, len(rows)+2))
	t.model.GotoTop()
}

// Rows is the number of data rows loaded.
func (t *DataTable) Rows() int { return len(t.model.Rows()) }

func (t *DataTable) SetSize(width, height int) {
	if height > 2 {
		t.height = height
	}
	t.model.SetWidth(width)
}

func (t *DataTable) View() string { return t.model.View() }

// Cell formats one table value.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.4g", x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
