package render

import (
	"fmt"
	"image/color"
	"math"

	"chartdeck/internal/catalog"

	"github.com/fogleman/gg"
)

const (
	fallbackWidth  = 600
	fallbackHeight = 400
)

type margin struct{ top, right, bottom, left float64 }

var fallbackMargin = margin{top: 48, right: 20, bottom: 30, left: 40}

// Fallback paints a rough, axis-free approximation of any descriptor with
// gg. It never fails: unknown kinds, empty data and zero values still
// produce a captioned white frame with a baseline.
type Fallback struct{}

func NewFallback() *Fallback { return &Fallback{} }

func (f *Fallback) Name() string { return NameFallback }

func (f *Fallback) Render(d catalog.Descriptor, s Surface) (Handle, error) {
	w, h := s.Width, s.Height
	if s.Terminal {
		w, h = s.Width*cellPixelsX, s.Height*cellPixelsY
	}
	if w < 32 || h < 32 {
		w, h = fallbackWidth, fallbackHeight
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	dc.DrawString(fmt.Sprintf("%s: %s", d.Kind.Title(), d.Title()), 10, 18)
	dc.DrawString(fmt.Sprintf("data points: %d", d.PointCount()), 10, 34)

	area := plotArea{
		left:   fallbackMargin.left,
		top:    fallbackMargin.top,
		width:  float64(w) - fallbackMargin.left - fallbackMargin.right,
		height: float64(h) - fallbackMargin.top - fallbackMargin.bottom,
	}
	if area.width < 8 || area.height < 8 {
		area = plotArea{left: 2, top: 2, width: float64(w) - 4, height: float64(h) - 4}
	}

	maxValue := d.Config.MaxValue()
	if d.Kind == catalog.KindStackedArea {
		for _, v := range d.Config.StackedTotals() {
			maxValue = math.Max(maxValue, v)
		}
	}
	if d.Kind == catalog.KindHistogram {
		_, counts := d.Config.Histogram()
		maxValue = 0
		for _, c := range counts {
			maxValue = math.Max(maxValue, c)
		}
	}
	if maxValue == 0 {
		maxValue = 1
	}
	area.scale = area.height / maxValue

	switch d.Kind {
	case catalog.KindScatter:
		f.points(dc, area, d.Config)
	case catalog.KindLine, catalog.KindStackedArea, catalog.KindErrorBar, catalog.KindRadar:
		series := d.Config.Series
		if d.Kind == catalog.KindStackedArea {
			series = cumulative(series)
		}
		f.lines(dc, area, series, d.Kind == catalog.KindRadar)
	case catalog.KindHistogram:
		_, counts := d.Config.Histogram()
		f.bars(dc, area, []catalog.Series{{Values: counts}})
	case catalog.KindBox:
		boxes := make([]catalog.Series, len(d.Config.Series))
		for i, sr := range d.Config.Series {
			five := catalog.FiveNumber(sr.Values)
			boxes[i] = catalog.Series{Values: five[:], Color: seriesColor(sr, i)}
		}
		f.bars(dc, area, boxes)
	default:
		// bar, hbar, pie and anything unrecognized
		f.bars(dc, area, d.Config.Series)
	}

	// baseline
	dc.SetColor(color.Gray{Y: 0x60})
	dc.SetLineWidth(1)
	dc.DrawLine(area.left, area.bottom(), area.left+area.width, area.bottom())
	dc.Stroke()

	frame := Frame{Image: dc.Image()}
	if s.Terminal && s.Width > 0 && s.Height > 0 {
		frame.Text = Blocks(frame.Image, s.Width, s.Height)
	}
	return NewHandle(frame), nil
}

type plotArea struct {
	left, top     float64
	width, height float64
	scale         float64
}

func (a plotArea) bottom() float64 { return a.top + a.height }

func (a plotArea) y(v float64) float64 {
	return a.bottom() - math.Abs(v)*a.scale
}

func (f *Fallback) bars(dc *gg.Context, a plotArea, series []catalog.Series) {
	n := 0
	for _, sr := range series {
		n = max(n, len(sr.Values))
	}
	if n == 0 || len(series) == 0 {
		return
	}
	group := a.width / float64(n)
	barWidth := group * 0.8 / float64(len(series))

	for i, sr := range series {
		dc.SetColor(mustHex(seriesColor(sr, i)))
		for j, v := range sr.Values {
			if !catalog.Finite(v) {
				continue
			}
			x := a.left + float64(j)*group + group*0.1 + float64(i)*barWidth
			y := a.y(v)
			dc.DrawRectangle(x, y, math.Max(barWidth, 1), a.bottom()-y)
			dc.Fill()
		}
	}
}

func (f *Fallback) lines(dc *gg.Context, a plotArea, series []catalog.Series, closed bool) {
	dc.SetLineWidth(2)
	for i, sr := range series {
		if len(sr.Values) == 0 {
			continue
		}
		dc.SetColor(mustHex(seriesColor(sr, i)))
		step := a.width
		if len(sr.Values) > 1 {
			step = a.width / float64(len(sr.Values)-1)
		}
		// a non-finite sample breaks the line into separate runs
		gap := true
		for j, v := range sr.Values {
			if !catalog.Finite(v) {
				gap = true
				continue
			}
			x, y := a.left+float64(j)*step, a.y(v)
			if gap {
				dc.MoveTo(x, y)
				gap = false
			} else {
				dc.LineTo(x, y)
			}
		}
		if closed {
			dc.ClosePath()
		}
		dc.Stroke()

		for j, v := range sr.Values {
			if !catalog.Finite(v) {
				continue
			}
			dc.DrawCircle(a.left+float64(j)*step, a.y(v), 3)
			dc.Fill()
		}
	}
}

func (f *Fallback) points(dc *gg.Context, a plotArea, cfg catalog.Config) {
	maxX := 0.0
	for _, sr := range cfg.Series {
		for _, p := range sr.Points {
			if catalog.Finite(p.X) {
				maxX = math.Max(maxX, math.Abs(p.X))
			}
		}
	}
	if maxX == 0 {
		maxX = 1
	}
	for i, sr := range cfg.Series {
		dc.SetColor(mustHex(seriesColor(sr, i)))
		for _, p := range sr.Points {
			if !catalog.Finite(p.X) || !catalog.Finite(p.Y) {
				continue
			}
			dc.DrawCircle(a.left+math.Abs(p.X)/maxX*a.width, a.y(p.Y), 4)
			dc.Fill()
		}
	}
}
