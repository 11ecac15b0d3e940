package mcpserver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"
	"chartdeck/internal/slideshow"
	"chartdeck/internal/stats"
)

// MockStatsProvider implements StatsProvider for testing
type MockStatsProvider struct {
	Sums  []stats.Summary
	Err   error
	Kinds []catalog.Kind
}

func (m *MockStatsProvider) Summarize(ctx context.Context, d catalog.Descriptor) ([]stats.Summary, error) {
	m.Kinds = append(m.Kinds, d.Kind)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Sums, nil
}

// MockRenderer fails on the kinds listed in Fail.
type MockRenderer struct {
	Fail map[catalog.Kind]bool
}

func (m *MockRenderer) Name() string { return "mock" }

func (m *MockRenderer) Render(d catalog.Descriptor, _ render.Surface) (render.Handle, error) {
	if m.Fail[d.Kind] {
		return nil, errors.New("mock failure")
	}
	return render.NewHandle(render.Frame{Text: d.Kind.String()}), nil
}

func newTestServer(t *testing.T, r render.Renderer, sp StatsProvider) *Server {
	t.Helper()
	src, err := catalog.Builtin(catalog.VariantFull)
	if err != nil {
		t.Fatalf("Expected builtin catalog, got error: %v", err)
	}
	ctrl, err := slideshow.Start(slideshow.Config{Fallback: true}, r, src, slideshow.Triggers{})
	if err != nil {
		t.Fatalf("Expected controller, got error: %v", err)
	}
	s, err := NewServer(Config{ServerName: "chartdeck-test", ServerVersion: "v0"}, ctrl, sp)
	if err != nil {
		t.Fatalf("Expected server, got error: %v", err)
	}
	return s
}

func TestHandleListCharts(t *testing.T) {
	s := newTestServer(t, &MockRenderer{}, nil)

	_, result, err := s.handleListCharts(context.Background(), nil, NoArgs{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Charts) != 10 {
		t.Fatalf("Expected 10 charts, got %d", len(result.Charts))
	}
	if result.Catalog != "full" {
		t.Errorf("Expected catalog 'full', got '%s'", result.Catalog)
	}
	if result.Charts[5].Kind != "pie" {
		t.Errorf("Expected chart 5 to be 'pie', got '%s'", result.Charts[5].Kind)
	}
	if result.Charts[6].Points == 0 {
		t.Error("Expected scatter chart to report points")
	}
}

func TestHandleNextAndPrevious(t *testing.T) {
	s := newTestServer(t, &MockRenderer{}, nil)
	ctx := context.Background()

	_, result, err := s.handleNextChart(ctx, nil, NoArgs{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Index != 1 || result.Counter != "2/10" {
		t.Errorf("Expected index 1 and counter '2/10', got %d and '%s'", result.Index, result.Counter)
	}
	if result.Kind != "bar" {
		t.Errorf("Expected kind 'bar', got '%s'", result.Kind)
	}

	s.handlePreviousChart(ctx, nil, NoArgs{})
	_, result, _ = s.handlePreviousChart(ctx, nil, NoArgs{})
	if result.Counter != "10/10" {
		t.Errorf("Expected wrap to '10/10', got '%s'", result.Counter)
	}
}

func TestHandleShowChart(t *testing.T) {
	s := newTestServer(t, &MockRenderer{}, nil)
	ctx := context.Background()

	_, result, err := s.handleShowChart(ctx, nil, ShowChartArgs{Index: 7})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Kind != "box" {
		t.Errorf("Expected kind 'box', got '%s'", result.Kind)
	}

	_, _, err = s.handleShowChart(ctx, nil, ShowChartArgs{Index: 10})
	if err == nil {
		t.Error("Expected error for out-of-range index")
	}
	_, current, _ := s.handleCurrentChart(ctx, nil, NoArgs{})
	if current.Index != 7 {
		t.Errorf("Expected cursor to stay at 7, got %d", current.Index)
	}
}

func TestFallbackReported(t *testing.T) {
	s := newTestServer(t, &MockRenderer{Fail: map[catalog.Kind]bool{catalog.KindPie: true}}, nil)

	_, result, err := s.handleShowChart(context.Background(), nil, ShowChartArgs{Index: 5})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.Fallback {
		t.Error("Expected fallback to be reported")
	}
	if result.Renderer != render.NameFallback {
		t.Errorf("Expected renderer '%s', got '%s'", render.NameFallback, result.Renderer)
	}
	if result.Error == "" {
		t.Error("Expected primary error to be reported")
	}
	if result.Counter != "6/10" {
		t.Errorf("Expected counter '6/10', got '%s'", result.Counter)
	}
}

func TestHandleChartStats(t *testing.T) {
	mock := &MockStatsProvider{Sums: []stats.Summary{{Series: "GMV", Count: 7, Mean: 10}}}
	s := newTestServer(t, &MockRenderer{}, mock)
	ctx := context.Background()

	_, result, err := s.handleChartStats(ctx, nil, ChartStatsArgs{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Index != 0 || result.Kind != "line" {
		t.Errorf("Expected current chart 0 (line), got %d (%s)", result.Index, result.Kind)
	}
	if len(result.Stats) != 1 || result.Stats[0].Count != 7 {
		t.Errorf("Expected stats to be passed through, got %+v", result.Stats)
	}

	idx := 1
	_, result, _ = s.handleChartStats(ctx, nil, ChartStatsArgs{Index: &idx})
	if result.Kind != "bar" {
		t.Errorf("Expected kind 'bar', got '%s'", result.Kind)
	}

	bad := 99
	if _, _, err := s.handleChartStats(ctx, nil, ChartStatsArgs{Index: &bad}); err == nil {
		t.Error("Expected error for out-of-range index")
	}
}

func TestHandleChartStats_Errors(t *testing.T) {
	s := newTestServer(t, &MockRenderer{}, nil)
	_, _, err := s.handleChartStats(context.Background(), nil, ChartStatsArgs{})
	if !errors.Is(err, ErrStatsUnavailable) {
		t.Errorf("Expected ErrStatsUnavailable, got %v", err)
	}

	failing := newTestServer(t, &MockRenderer{}, &MockStatsProvider{Err: errors.New("db down")})
	if _, _, err := failing.handleChartStats(context.Background(), nil, ChartStatsArgs{}); err == nil {
		t.Error("Expected error when stats provider fails")
	}
}

func TestConcurrentCallsAreSerialized(t *testing.T) {
	s := newTestServer(t, &MockRenderer{}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleNextChart(ctx, nil, NoArgs{})
		}()
	}
	wg.Wait()

	_, result, _ := s.handleCurrentChart(ctx, nil, NoArgs{})
	if result.Index != 0 {
		t.Errorf("Expected 20 advances over 10 charts to land on 0, got %d", result.Index)
	}
}

func TestNewServer_NilController(t *testing.T) {
	if _, err := NewServer(Config{}, nil, nil); err == nil {
		t.Error("Expected error for nil controller")
	}
}
