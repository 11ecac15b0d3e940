package render

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"chartdeck/internal/catalog"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the encoding Raster.Encode writes.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Terminal cells are rendered at this resolution before being scaled down
// to half blocks, so go-chart's fonts and paddings keep their proportions.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

// Raster draws charts with go-chart. Horizontal bar and radar charts have no
// go-chart equivalent and report ErrUnsupportedKind.
type Raster struct{}

func NewRaster() *Raster { return &Raster{} }

func (r *Raster) Name() string { return NameRaster }

func (r *Raster) Render(d catalog.Descriptor, s Surface) (Handle, error) {
	w, h := s.Width, s.Height
	if s.Terminal {
		w, h = s.Width*cellPixelsX, s.Height*cellPixelsY
	}

	var buf bytes.Buffer
	if err := r.encode(&buf, d, w, h, chart.PNG); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s png: %w", d.Kind, err)
	}

	frame := Frame{Image: img}
	if s.Terminal {
		frame.Text = Blocks(img, s.Width, s.Height)
	}
	return NewHandle(frame), nil
}

// Encode writes the chart for d in the requested format. The surface is
// taken as pixels; terminal surfaces use the same cell scale as Render.
func (r *Raster) Encode(w io.Writer, d catalog.Descriptor, s Surface, f Format) error {
	width, height := s.Width, s.Height
	if s.Terminal {
		width, height = s.Width*cellPixelsX, s.Height*cellPixelsY
	}
	switch f {
	case FormatPNG:
		return r.encode(w, d, width, height, chart.PNG)
	case FormatSVG:
		return r.encode(w, d, width, height, chart.SVG)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func (r *Raster) encode(w io.Writer, d catalog.Descriptor, width, height int, rp chart.RendererProvider) error {
	if width < 64 || height < 64 {
		return fmt.Errorf("%dx%d px: %w", width, height, ErrSurfaceTooSmall)
	}

	var err error
	switch d.Kind {
	case catalog.KindLine, catalog.KindStackedArea, catalog.KindErrorBar, catalog.KindScatter:
		c := r.continuous(d, width, height)
		err = c.Render(rp, w)
	case catalog.KindBar, catalog.KindHistogram, catalog.KindBox:
		bc := r.bars(d, width, height)
		err = bc.Render(rp, w)
	case catalog.KindPie:
		pc := chart.PieChart{
			Title:  d.Title(),
			Width:  width,
			Height: height,
			Values: r.values(d),
		}
		err = pc.Render(rp, w)
	default:
		return fmt.Errorf("%s: %w", d.Kind, ErrUnsupportedKind)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", d.Kind, err)
	}
	return nil
}

func (r *Raster) continuous(d catalog.Descriptor, width, height int) chart.Chart {
	cfg := d.Config
	var series []chart.Series

	switch d.Kind {
	case catalog.KindScatter:
		for i, sr := range cfg.Series {
			xs := make([]float64, len(sr.Points))
			ys := make([]float64, len(sr.Points))
			for j, p := range sr.Points {
				xs[j], ys[j] = p.X, p.Y
			}
			series = append(series, chart.ContinuousSeries{
				Name:    sr.Label,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chartColor(seriesColor(sr, i)),
				},
			})
		}

	case catalog.KindStackedArea:
		stacked := cumulative(cfg.Series)
		// topmost band first so lower fills paint over it
		for i := len(stacked) - 1; i >= 0; i-- {
			sr := stacked[i]
			c := chartColor(seriesColor(sr, i))
			series = append(series, chart.ContinuousSeries{
				Name:    sr.Label,
				XValues: indexes(len(sr.Values)),
				YValues: sr.Values,
				Style:   chart.Style{StrokeColor: c, FillColor: c.WithAlpha(160)},
			})
		}

	default:
		for i, sr := range cfg.Series {
			c := chartColor(seriesColor(sr, i))
			style := chart.Style{StrokeColor: c, StrokeWidth: 2}
			if d.Kind == catalog.KindErrorBar {
				style.DotWidth = 3
				style.DotColor = c
			}
			series = append(series, chart.ContinuousSeries{
				Name:    sr.Label,
				XValues: indexes(len(sr.Values)),
				YValues: sr.Values,
				Style:   style,
			})
			for j, e := range sr.Errors {
				if j >= len(sr.Values) {
					break
				}
				x := float64(j)
				series = append(series, chart.ContinuousSeries{
					XValues: []float64{x, x},
					YValues: []float64{sr.Values[j] - e, sr.Values[j] + e},
					Style:   chart.Style{StrokeColor: c, StrokeWidth: 1},
				})
			}
		}
	}

	c := chart.Chart{
		Title:      d.Title(),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: cfg.XLabel},
		YAxis:      chart.YAxis{Name: cfg.YLabel},
		Series:     series,
	}
	if d.Kind != catalog.KindScatter {
		c.XAxis.Ticks = r.ticks(cfg.Labels)
	}
	if cfg.Legend {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}
	return c
}

func (r *Raster) ticks(labels []string) []chart.Tick {
	if len(labels) == 0 {
		return nil
	}
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

func (r *Raster) bars(d catalog.Descriptor, width, height int) chart.BarChart {
	bars := r.values(d)
	barWidth := (width - 80) / (len(bars)*3/2 + 1)
	if barWidth < 4 {
		barWidth = 4
	}
	return chart.BarChart{
		Title:      d.Title(),
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}
}

// values flattens a descriptor into labelled bar or slice values.
func (r *Raster) values(d catalog.Descriptor) []chart.Value {
	cfg := d.Config
	var out []chart.Value

	switch d.Kind {
	case catalog.KindHistogram:
		labels, counts := cfg.Histogram()
		c := chartColor(seriesColor(cfg.Series[0], 0))
		for i := range labels {
			out = append(out, chart.Value{Label: labels[i], Value: counts[i], Style: chart.Style{FillColor: c, StrokeColor: c}})
		}

	case catalog.KindBox:
		for i, sr := range cfg.Series {
			c := chartColor(seriesColor(sr, i))
			five := catalog.FiveNumber(sr.Values)
			for q, name := range catalog.FiveNumberLabels {
				out = append(out, chart.Value{
					Label: sr.Label + " " + name,
					Value: five[q],
					Style: chart.Style{FillColor: c, StrokeColor: c},
				})
			}
		}

	case catalog.KindPie:
		for i, label := range cfg.Labels {
			if i < len(cfg.Series[0].Values) {
				out = append(out, chart.Value{Label: label, Value: cfg.Series[0].Values[i]})
			}
		}

	default:
		for j, label := range cfg.Labels {
			for i, sr := range cfg.Series {
				if j >= len(sr.Values) {
					continue
				}
				name := label
				if len(cfg.Series) > 1 {
					name = label + " " + sr.Label
				}
				c := chartColor(seriesColor(sr, i))
				out = append(out, chart.Value{Label: name, Value: sr.Values[j], Style: chart.Style{FillColor: c, StrokeColor: c}})
			}
		}
	}
	return out
}

func indexes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func chartColor(hex string) drawing.Color {
	c := mustHex(hex)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
