package catalog

import (
	"fmt"
	"math"
	"sort"
)

const defaultBins = 8

// Point is one x/y sample of a scatter series.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Series is one named run of data inside a chart.
type Series struct {
	Label  string    `yaml:"label"`
	Values []float64 `yaml:"values,omitempty"`
	Points []Point   `yaml:"points,omitempty"`
	Errors []float64 `yaml:"errors,omitempty"`
	Color  string    `yaml:"color,omitempty"`
	Fill   string    `yaml:"fill,omitempty"`
}

// Config is everything a renderer needs besides the kind.
type Config struct {
	Title  string   `yaml:"title"`
	Labels []string `yaml:"labels,omitempty"`
	Series []Series `yaml:"series"`
	XLabel string   `yaml:"x_label,omitempty"`
	YLabel string   `yaml:"y_label,omitempty"`
	Bins   int      `yaml:"bins,omitempty"`
	Legend bool     `yaml:"legend,omitempty"`
}

// Descriptor is a single catalog entry. Values handed out by a Catalog are
// deep copies, so mutating one never affects the catalog.
type Descriptor struct {
	Kind        Kind     `yaml:"kind"`
	Config      Config   `yaml:"config"`
	Description string   `yaml:"description"`
	Scenarios   []string `yaml:"scenarios,omitempty"`
}

// Title falls back to the kind title when the config has none.
func (d Descriptor) Title() string {
	if d.Config.Title != "" {
		return d.Config.Title
	}
	return d.Kind.Title()
}

// PointCount is the number of plotted samples across all series.
func (d Descriptor) PointCount() int {
	n := 0
	for _, s := range d.Config.Series {
		n += len(s.Values) + len(s.Points)
	}
	return n
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Scenarios = append([]string(nil), d.Scenarios...)
	out.Config.Labels = append([]string(nil), d.Config.Labels...)
	out.Config.Series = make([]Series, len(d.Config.Series))
	for i, s := range d.Config.Series {
		s.Values = append([]float64(nil), s.Values...)
		s.Points = append([]Point(nil), s.Points...)
		s.Errors = append([]float64(nil), s.Errors...)
		out.Config.Series[i] = s
	}
	return out
}

// MaxValue is the largest plotted magnitude across all series, including
// point y values and value+error tops. It is never negative.
func (c Config) MaxValue() float64 {
	max := 0.0
	for _, s := range c.Series {
		for i, v := range s.Values {
			if !Finite(v) {
				continue
			}
			top := math.Abs(v)
			if i < len(s.Errors) && Finite(s.Errors[i]) {
				top += math.Abs(s.Errors[i])
			}
			if top > max {
				max = top
			}
		}
		for _, p := range s.Points {
			if !Finite(p.Y) {
				continue
			}
			if a := math.Abs(p.Y); a > max {
				max = a
			}
		}
	}
	return max
}

// StackedTotals sums the series element-wise, which is the top edge of a
// stacked area chart.
func (c Config) StackedTotals() []float64 {
	var totals []float64
	for _, s := range c.Series {
		for i, v := range s.Values {
			if i >= len(totals) {
				totals = append(totals, 0)
			}
			if Finite(v) {
				totals[i] += v
			}
		}
	}
	return totals
}

// BinCount returns the configured bin count or the default.
func (c Config) BinCount() int {
	if c.Bins > 0 {
		return c.Bins
	}
	return defaultBins
}

// Histogram buckets the first series into equal-width bins spanning its
// min..max. The last bin includes the maximum. Non-finite samples are
// not counted.
func (c Config) Histogram() (labels []string, counts []float64) {
	if len(c.Series) == 0 {
		return nil, nil
	}
	values := finiteOnly(c.Series[0].Values)
	if len(values) == 0 {
		return nil, nil
	}
	bins := c.BinCount()

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}

	counts = make([]float64, bins)
	for _, v := range values {
		// a span overflowing to +Inf yields NaN here, which lands in the last bin
		idx := bins - 1
		if f := (v - lo) / width; f < float64(bins) {
			idx = max(int(f), 0)
		}
		counts[idx]++
	}

	labels = make([]string, bins)
	for i := range labels {
		from := lo + float64(i)*width
		labels[i] = fmt.Sprintf("%.0f-%.0f", from, from+width)
	}
	return labels, counts
}

// FiveNumber is the min, lower quartile, median, upper quartile and max of
// values using linear interpolation between closest ranks.
func FiveNumber(values []float64) [5]float64 {
	var out [5]float64
	sorted := finiteOnly(values)
	if len(sorted) == 0 {
		return out
	}
	sort.Float64s(sorted)
	for i, q := range []float64{0, 0.25, 0.5, 0.75, 1} {
		out[i] = quantile(sorted, q)
	}
	return out
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// FiveNumberLabels name the bars used to approximate a box plot.
var FiveNumberLabels = []string{"min", "q1", "median", "q3", "max"}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteOnly returns a fresh slice holding the finite values of vs.
func finiteOnly(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if Finite(v) {
			out = append(out, v)
		}
	}
	return out
}
