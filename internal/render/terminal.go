package render

import (
	"fmt"

	"chartdeck/internal/catalog"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth  = 12
	minTerminalHeight = 6
)

// Terminal draws charts as text with ntcharts. Pie and radar charts have
// no terminal form and report ErrUnsupportedKind.
type Terminal struct{}

func NewTerminal() *Terminal { return &Terminal{} }

func (t *Terminal) Name() string { return NameTerminal }

func (t *Terminal) Render(d catalog.Descriptor, s Surface) (Handle, error) {
	if !s.Terminal {
		return nil, fmt.Errorf("terminal renderer needs a terminal surface: %w", ErrUnsupportedKind)
	}
	if s.Width < minTerminalWidth || s.Height < minTerminalHeight {
		return nil, fmt.Errorf("%dx%d cells: %w", s.Width, s.Height, ErrSurfaceTooSmall)
	}

	var (
		view string
		err  error
	)
	switch d.Kind {
	case catalog.KindLine, catalog.KindStackedArea, catalog.KindErrorBar:
		view, err = t.lines(d, s)
	case catalog.KindScatter:
		view, err = t.scatter(d, s)
	case catalog.KindBar, catalog.KindHorizontalBar, catalog.KindHistogram, catalog.KindBox:
		view = t.bars(d, s)
	default:
		return nil, fmt.Errorf("%s: %w", d.Kind, ErrUnsupportedKind)
	}
	if err != nil {
		return nil, err
	}
	return NewHandle(Frame{Text: view}), nil
}

func (t *Terminal) lines(d catalog.Descriptor, s Surface) (string, error) {
	cfg := d.Config
	series := cfg.Series
	if d.Kind == catalog.KindStackedArea {
		series = cumulative(cfg.Series)
	}

	maxY := cfg.MaxValue()
	if d.Kind == catalog.KindStackedArea {
		for _, v := range cfg.StackedTotals() {
			if v > maxY {
				maxY = v
			}
		}
	}
	if maxY == 0 {
		return "", fmt.Errorf("%s: all values are zero", d.Kind)
	}

	n := len(cfg.Labels)
	if n < 2 {
		n = 2
	}
	lc := linechart.New(s.Width, s.Height, 0, float64(n-1), 0, maxY*1.1)
	for _, sr := range series {
		for i := 0; i < len(sr.Values)-1; i++ {
			lc.DrawBrailleLine(
				canvas.Float64Point{X: float64(i), Y: sr.Values[i]},
				canvas.Float64Point{X: float64(i + 1), Y: sr.Values[i+1]},
			)
		}
		// error whiskers
		for i, e := range sr.Errors {
			if i >= len(sr.Values) {
				break
			}
			lc.DrawBrailleLine(
				canvas.Float64Point{X: float64(i), Y: sr.Values[i] - e},
				canvas.Float64Point{X: float64(i), Y: sr.Values[i] + e},
			)
		}
	}
	lc.DrawXYAxisAndLabel()
	return lc.View(), nil
}

func (t *Terminal) scatter(d catalog.Descriptor, s Surface) (string, error) {
	var maxX float64
	for _, sr := range d.Config.Series {
		for _, p := range sr.Points {
			if p.X > maxX {
				maxX = p.X
			}
		}
	}
	maxY := d.Config.MaxValue()
	if maxX == 0 || maxY == 0 {
		return "", fmt.Errorf("%s: empty value range", d.Kind)
	}

	lc := linechart.New(s.Width, s.Height, 0, maxX*1.05, 0, maxY*1.1)
	for _, sr := range d.Config.Series {
		for _, p := range sr.Points {
			pt := canvas.Float64Point{X: p.X, Y: p.Y}
			lc.DrawBrailleLine(pt, pt)
		}
	}
	lc.DrawXYAxisAndLabel()
	return lc.View(), nil
}

func (t *Terminal) bars(d catalog.Descriptor, s Surface) string {
	var opts []barchart.Option
	if d.Kind == catalog.KindHorizontalBar {
		opts = append(opts, barchart.WithHorizontalBars())
	}
	bc := barchart.New(s.Width, s.Height, opts...)
	bc.PushAll(barData(d))
	bc.Draw()
	return bc.View()
}

// barData groups values per label, one bar value per series.
func barData(d catalog.Descriptor) []barchart.BarData {
	cfg := d.Config
	style := func(i int) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColor(cfg.Series[i], i)))
	}

	switch d.Kind {
	case catalog.KindHistogram:
		labels, counts := cfg.Histogram()
		data := make([]barchart.BarData, len(labels))
		for i := range labels {
			data[i] = barchart.BarData{
				Label:  labels[i],
				Values: []barchart.BarValue{{Name: cfg.Series[0].Label, Value: counts[i], Style: style(0)}},
			}
		}
		return data

	case catalog.KindBox:
		data := make([]barchart.BarData, len(catalog.FiveNumberLabels))
		for q, label := range catalog.FiveNumberLabels {
			data[q].Label = label
			for i, sr := range cfg.Series {
				five := catalog.FiveNumber(sr.Values)
				data[q].Values = append(data[q].Values, barchart.BarValue{Name: sr.Label, Value: five[q], Style: style(i)})
			}
		}
		return data
	}

	data := make([]barchart.BarData, len(cfg.Labels))
	for j, label := range cfg.Labels {
		data[j].Label = label
		for i, sr := range cfg.Series {
			if j < len(sr.Values) {
				data[j].Values = append(data[j].Values, barchart.BarValue{Name: sr.Label, Value: sr.Values[j], Style: style(i)})
			}
		}
	}
	return data
}

// cumulative turns stacked series into their running sums.
func cumulative(series []catalog.Series) []catalog.Series {
	out := make([]catalog.Series, len(series))
	var running []float64
	for i, sr := range series {
		acc := make([]float64, len(sr.Values))
		for j, v := range sr.Values {
			if j >= len(running) {
				running = append(running, 0)
			}
			running[j] += v
			acc[j] = running[j]
		}
		sr.Values = acc
		out[i] = sr
	}
	return out
}
