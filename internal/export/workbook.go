package export

import (
	"fmt"

	"chartdeck/internal/catalog"
	"chartdeck/internal/stats"

	"github.com/xuri/excelize/v2"
)

// Table is the rectangular data behind a chart. Header names the columns,
// the first column of every row is the category.
type Table struct {
	Header []string
	Rows   [][]any
}

// StatsSheet lists per-series statistics when summaries are supplied.
const StatsSheet = "statistics"

var statsHeader = []string{"chart", "series", "count", "mean", "std dev", "min", "max"}

// WriteWorkbook saves one sheet per descriptor with its data and a native
// chart of the closest workbook chart type. sums, when not nil, is indexed
// like descriptors and adds a statistics sheet.
func WriteWorkbook(path string, descriptors []catalog.Descriptor, sums [][]stats.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, d := range descriptors {
		sheet := FileBase(i, d)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}

		t := DataTable(d)
		if err := f.SetSheetRow(sheet, "A1", &t.Header); err != nil {
			return fmt.Errorf("sheet %s header: %w", sheet, err)
		}
		for r, row := range t.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet, r+2, err)
			}
		}
		if len(t.Rows) == 0 {
			continue
		}

		anchor, _ := excelize.CoordinatesToCellName(len(t.Header)+2, 2)
		if err := f.AddChart(sheet, anchor, workbookChart(sheet, d, t)); err != nil {
			return fmt.Errorf("chart %s: %w", sheet, err)
		}
	}

	if sums != nil {
		if err := writeStats(f, descriptors, sums); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// DataTable lays out d the way it is written to its sheet.
func DataTable(d catalog.Descriptor) Table {
	cfg := d.Config
	switch d.Kind {
	case catalog.KindHistogram:
		labels, counts := cfg.Histogram()
		t := Table{Header: []string{"bin", "count"}}
		for i := range labels {
			t.Rows = append(t.Rows, []any{labels[i], counts[i]})
		}
		return t

	case catalog.KindBox:
		t := Table{Header: []string{"statistic"}}
		fives := make([][5]float64, len(cfg.Series))
		for i, s := range cfg.Series {
			t.Header = append(t.Header, s.Label)
			fives[i] = catalog.FiveNumber(s.Values)
		}
		for q, name := range catalog.FiveNumberLabels {
			row := []any{name}
			for i := range cfg.Series {
				row = append(row, fives[i][q])
			}
			t.Rows = append(t.Rows, row)
		}
		return t

	case catalog.KindScatter:
		t := Table{Header: []string{"x"}}
		// x in the first column, one y column per series
		for _, s := range cfg.Series {
			t.Header = append(t.Header, s.Label)
		}
		for i, s := range cfg.Series {
			for _, p := range s.Points {
				row := make([]any, len(cfg.Series)+1)
				row[0] = p.X
				row[i+1] = p.Y
				t.Rows = append(t.Rows, row)
			}
		}
		return t
	}

	t := Table{Header: []string{"label"}}
	for _, s := range cfg.Series {
		t.Header = append(t.Header, s.Label)
	}
	for _, s := range cfg.Series {
		if len(s.Errors) > 0 {
			t.Header = append(t.Header, s.Label+" error")
		}
	}
	for j, label := range cfg.Labels {
		row := []any{label}
		for _, s := range cfg.Series {
			row = append(row, valueAt(s.Values, j))
		}
		for _, s := range cfg.Series {
			if len(s.Errors) > 0 {
				row = append(row, valueAt(s.Errors, j))
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func valueAt(v []float64, i int) any {
	if i < len(v) {
		return v[i]
	}
	return nil
}

func workbookChart(sheet string, d catalog.Descriptor, t Table) *excelize.Chart {
	last := len(t.Rows) + 1
	col := func(c int) string {
		name, _ := excelize.ColumnNumberToName(c)
		return name
	}
	ref := func(c, from, to int) string {
		return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, col(c), from, col(c), to)
	}

	valueColumns := len(t.Header) - 1
	if d.Kind != catalog.KindHistogram && d.Kind != catalog.KindBox && d.Kind != catalog.KindScatter {
		valueColumns = len(d.Config.Series)
	}

	var series []excelize.ChartSeries
	for c := 2; c < 2+valueColumns; c++ {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, col(c)),
			Categories: ref(1, 2, last),
			Values:     ref(c, 2, last),
		})
	}

	return &excelize.Chart{
		Type:      chartType(d.Kind),
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: d.Title()}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
	}
}

func chartType(k catalog.Kind) excelize.ChartType {
	switch k {
	case catalog.KindLine, catalog.KindErrorBar:
		return excelize.Line
	case catalog.KindHorizontalBar:
		return excelize.Bar
	case catalog.KindStackedArea:
		return excelize.AreaStacked
	case catalog.KindPie:
		return excelize.Pie
	case catalog.KindScatter:
		return excelize.Scatter
	case catalog.KindRadar:
		return excelize.Radar
	default:
		return excelize.Col
	}
}

func writeStats(f *excelize.File, descriptors []catalog.Descriptor, sums [][]stats.Summary) error {
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return fmt.Errorf("sheet %s: %w", StatsSheet, err)
	}
	if err := f.SetSheetRow(StatsSheet, "A1", &statsHeader); err != nil {
		return fmt.Errorf("sheet %s header: %w", StatsSheet, err)
	}
	r := 2
	for i, d := range descriptors {
		if i >= len(sums) {
			break
		}
		for _, s := range sums[i] {
			var sd any
			if s.StdDev != nil {
				sd = *s.StdDev
			}
			row := []any{FileBase(i, d), s.Series, s.Count, s.Mean, sd, s.Min, s.Max}
			cell, _ := excelize.CoordinatesToCellName(1, r)
			if err := f.SetSheetRow(StatsSheet, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", StatsSheet, r, err)
			}
			r++
		}
	}
	return nil
}
