package catalog

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullCatalogOrderAndValidity(t *testing.T) {
	cat, err := Full()
	require.NoError(t, err)
	require.Equal(t, 10, cat.Len())

	want := []Kind{
		KindLine, KindBar, KindHorizontalBar, KindStackedArea, KindHistogram,
		KindPie, KindScatter, KindBox, KindRadar, KindErrorBar,
	}
	for i, d := range cat.All() {
		assert.Equal(t, want[i], d.Kind, "entry %d", i)
		assert.NoError(t, Validate(d), "entry %d (%s)", i, d.Kind)
		assert.NotEmpty(t, d.Description, "entry %d", i)
	}
}

func TestSimpleCatalog(t *testing.T) {
	cat, err := Simple()
	require.NoError(t, err)
	require.Equal(t, 5, cat.Len())
	for _, d := range cat.All() {
		assert.NoError(t, Validate(d))
	}
	assert.Equal(t, KindRadar, cat.At(4).Kind)
}

func TestBuiltinVariants(t *testing.T) {
	for _, v := range []string{"", VariantFull, VariantSimple} {
		src, err := Builtin(v)
		require.NoError(t, err, v)
		_, err = src.Build()
		require.NoError(t, err, v)
	}
	_, err := Builtin("fancy")
	assert.Error(t, err)
}

func TestAtReturnsCopy(t *testing.T) {
	cat, err := Full()
	require.NoError(t, err)

	d := cat.At(0)
	d.Config.Series[0].Values[0] = -1000
	d.Config.Labels[0] = "mutated"
	d.Scenarios[0] = "mutated"

	again := cat.At(0)
	assert.Equal(t, 32.0, again.Config.Series[0].Values[0])
	assert.Equal(t, "4", again.Config.Labels[0])
	assert.NotEqual(t, "mutated", again.Scenarios[0])
}

func TestBuilderEmpty(t *testing.T) {
	_, err := NewBuilder("empty").Build()
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
}

func TestBuilderAddAfterBuildPanics(t *testing.T) {
	b := NewBuilder("x").Add(Descriptor{Kind: KindBar})
	_, err := b.Build()
	require.NoError(t, err)
	assert.Panics(t, func() { b.Add(Descriptor{Kind: KindBar}) })
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(strings.ToUpper(k.String()))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("donut")
	assert.Error(t, err)
}

func TestHistogramCountsSumToSample(t *testing.T) {
	cfg := Config{Bins: 8, Series: []Series{{Values: sampleScores(42, 50)}}}
	labels, counts := cfg.Histogram()
	require.Len(t, labels, 8)
	require.Len(t, counts, 8)

	total := 0.0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 50.0, total)
}

func TestHistogramFlatValues(t *testing.T) {
	cfg := Config{Bins: 4, Series: []Series{{Values: []float64{5, 5, 5}}}}
	_, counts := cfg.Histogram()
	assert.Equal(t, []float64{3, 0, 0, 0}, counts)
}

func TestHistogramSkipsNonFinite(t *testing.T) {
	cfg := Config{Bins: 2, Series: []Series{{Values: []float64{1, math.NaN(), 3, math.Inf(1), 4}}}}
	labels, counts := cfg.Histogram()
	require.Len(t, labels, 2)
	assert.Equal(t, []float64{1, 2}, counts)

	labels, counts = Config{Series: []Series{{Values: []float64{math.NaN()}}}}.Histogram()
	assert.Nil(t, labels)
	assert.Nil(t, counts)
}

func TestHistogramHugeSpan(t *testing.T) {
	cfg := Config{Bins: 4, Series: []Series{{Values: []float64{-math.MaxFloat64, 0, math.MaxFloat64}}}}
	_, counts := cfg.Histogram()
	total := 0.0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 3.0, total)
}

func TestNonFiniteSamplesIgnored(t *testing.T) {
	assert.Equal(t, [5]float64{1, 1, 1, 1, 1}, FiveNumber([]float64{math.NaN(), 1, math.Inf(-1)}))

	cfg := Config{Series: []Series{
		{Values: []float64{2, math.Inf(1)}, Errors: []float64{math.NaN(), 0}},
		{Points: []Point{{X: 1, Y: math.NaN()}}},
	}}
	assert.Equal(t, 2.0, cfg.MaxValue())
	assert.Equal(t, []float64{2, 0}, cfg.StackedTotals())
}

func TestFiveNumber(t *testing.T) {
	got := FiveNumber([]float64{7, 1, 3, 5, 9})
	if diff := cmp.Diff([5]float64{1, 3, 5, 7, 9}, got); diff != "" {
		t.Errorf("FiveNumber mismatch (-want +got):\n%s", diff)
	}

	got = FiveNumber([]float64{1, 2, 3, 4})
	assert.InDelta(t, 1.75, got[1], 1e-9)
	assert.InDelta(t, 2.5, got[2], 1e-9)
	assert.InDelta(t, 3.25, got[3], 1e-9)

	assert.Equal(t, [5]float64{}, FiveNumber(nil))
}

func TestMaxValue(t *testing.T) {
	cfg := Config{Series: []Series{
		{Values: []float64{1, 30}, Errors: []float64{0, 5}},
		{Points: []Point{{X: 1, Y: -40}}},
	}}
	assert.Equal(t, 40.0, cfg.MaxValue())
	assert.Equal(t, 0.0, Config{}.MaxValue())
}

func TestStackedTotals(t *testing.T) {
	cfg := Config{Series: []Series{
		{Values: []float64{1, 2, 3}},
		{Values: []float64{10, 20}},
	}}
	assert.Equal(t, []float64{11, 22, 3}, cfg.StackedTotals())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		d     Descriptor
		field string
	}{
		{"no series", Descriptor{Kind: KindLine}, "series"},
		{"line without labels", Descriptor{Kind: KindLine, Config: Config{Series: []Series{{Values: []float64{1}}}}}, "labels"},
		{"line length mismatch", Descriptor{Kind: KindLine, Config: Config{Labels: []string{"a", "b"}, Series: []Series{{Values: []float64{1}}}}}, "series[0].values"},
		{"errorbar missing errors", Descriptor{Kind: KindErrorBar, Config: Config{Labels: []string{"a"}, Series: []Series{{Values: []float64{1}}}}}, "series[0].errors"},
		{"pie negative", Descriptor{Kind: KindPie, Config: Config{Labels: []string{"a"}, Series: []Series{{Values: []float64{-1}}}}}, "series[0].values"},
		{"pie two series", Descriptor{Kind: KindPie, Config: Config{Labels: []string{"a"}, Series: []Series{{Values: []float64{1}}, {Values: []float64{1}}}}}, "series"},
		{"scatter without points", Descriptor{Kind: KindScatter, Config: Config{Series: []Series{{Values: []float64{1}}}}}, "series[0].points"},
		{"radar two axes", Descriptor{Kind: KindRadar, Config: Config{Labels: []string{"a", "b"}, Series: []Series{{Values: []float64{1, 2}}}}}, "labels"},
		{"box empty", Descriptor{Kind: KindBox, Config: Config{Series: []Series{{Label: "x"}}}}, "series[0].values"},
		{"unknown kind", Descriptor{Kind: Kind(99), Config: Config{Series: []Series{{}}}}, "kind"},
		{"histogram nan", Descriptor{Kind: KindHistogram, Config: Config{Series: []Series{{Values: []float64{1, math.NaN(), 3}}}}}, "series[0].values[1]"},
		{"line infinite", Descriptor{Kind: KindLine, Config: Config{Labels: []string{"a"}, Series: []Series{{Values: []float64{math.Inf(1)}}}}}, "series[0].values[0]"},
		{"errorbar infinite error", Descriptor{Kind: KindErrorBar, Config: Config{Labels: []string{"a"}, Series: []Series{{Values: []float64{1}, Errors: []float64{math.Inf(-1)}}}}}, "series[0].errors[0]"},
		{"scatter nan point", Descriptor{Kind: KindScatter, Config: Config{Series: []Series{{}, {Points: []Point{{X: 1, Y: 2}, {X: math.NaN(), Y: 1}}}}}}, "series[1].points[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.d)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	cat, err := Simple()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cat.All()))

	decoded, err := Decode("simple.yaml", &buf)
	require.NoError(t, err)
	if diff := cmp.Diff(cat.All(), decoded.All()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsInvalidEntry(t *testing.T) {
	doc := `
charts:
  - kind: pie
    description: broken
    config:
      title: bad pie
      labels: [a, b]
      series:
        - label: s
          values: [1]
`
	_, err := Decode("bad.yaml", strings.NewReader(doc))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, KindPie, ve.Kind)
}

func TestDecodeRejectsNonFiniteValues(t *testing.T) {
	doc := `
charts:
  - kind: histogram
    description: scores
    config:
      title: with a hole
      series:
        - label: s
          values: [1, .nan, 3]
`
	_, err := Decode("nan.yaml", strings.NewReader(doc))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, KindHistogram, ve.Kind)
	assert.Equal(t, "series[0].values[1]", ve.Field)
}

func TestDecodeUnknownKind(t *testing.T) {
	doc := "charts:\n  - kind: donut\n"
	_, err := Decode("bad.yaml", strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode("empty.yaml", strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
}
