// Package mcpserver exposes a slideshow over the Model Context Protocol.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"chartdeck/internal/catalog"
	"chartdeck/internal/slideshow"
	"chartdeck/internal/stats"
)

// ErrStatsUnavailable is returned by chart_stats when no database is wired.
var ErrStatsUnavailable = errors.New("dataset statistics are not available")

// StatsProvider computes per-series statistics for a descriptor.
type StatsProvider interface {
	Summarize(ctx context.Context, d catalog.Descriptor) ([]stats.Summary, error)
}

// Server wraps the MCP server around one slideshow controller.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
	stats     StatsProvider

	// mu serializes tool calls; the controller is single-threaded.
	mu   sync.Mutex
	ctrl *slideshow.Controller
}

// Config holds configuration for the MCP server.
type Config struct {
	ServerName    string
	ServerVersion string
	Logger        *zap.Logger
}

// NewServer creates a new MCP server instance. sp may be nil, in which case
// chart_stats reports ErrStatsUnavailable.
func NewServer(cfg Config, ctrl *slideshow.Controller, sp StatsProvider) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("mcpserver: nil controller")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}
	s := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		logger:    logger,
		stats:     sp,
		ctrl:      ctrl,
	}
	s.registerTools()
	return s, nil
}

// ChartResult describes the slide on screen after a tool call.
type ChartResult struct {
	Index       int    `json:"index" jsonschema:"zero-based position in the catalog"`
	Counter     string `json:"counter" jsonschema:"one-based position/total text"`
	Kind        string `json:"kind" jsonschema:"chart kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Renderer    string `json:"renderer,omitempty" jsonschema:"renderer that drew the slide"`
	Fallback    bool   `json:"fallback" jsonschema:"true when the fallback drawer was used"`
	Error       string `json:"error,omitempty" jsonschema:"primary renderer error, if any"`
}

// ChartEntry is one line of list_charts.
type ChartEntry struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Series int    `json:"series"`
	Points int    `json:"points"`
}

// ListChartsResult wraps the catalog listing.
type ListChartsResult struct {
	Catalog string       `json:"catalog" jsonschema:"catalog name"`
	Current int          `json:"current" jsonschema:"index of the slide on screen"`
	Charts  []ChartEntry `json:"charts"`
}

// NoArgs is the input of tools without parameters.
type NoArgs struct{}

// ShowChartArgs defines the input for show_chart.
type ShowChartArgs struct {
	Index int `json:"index" jsonschema:"zero-based catalog index"`
}

// ChartStatsArgs defines the input for chart_stats.
type ChartStatsArgs struct {
	Index *int `json:"index,omitempty" jsonschema:"zero-based catalog index, default is the current slide"`
}

// ChartStatsResult wraps per-series statistics.
type ChartStatsResult struct {
	Index int             `json:"index"`
	Kind  string          `json:"kind"`
	Stats []stats.Summary `json:"stats"`
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_charts",
		Description: "List every chart in the slideshow catalog with its index, kind, title and data size.",
	}, s.handleListCharts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_chart",
		Description: "Describe the chart currently shown, including the position counter and which renderer drew it.",
	}, s.handleCurrentChart)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "next_chart",
		Description: "Advance the slideshow by one chart, wrapping from the last chart to the first.",
	}, s.handleNextChart)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "previous_chart",
		Description: "Move the slideshow back by one chart, wrapping from the first chart to the last.",
	}, s.handlePreviousChart)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "show_chart",
		Description: "Jump to the chart at a zero-based index.",
	}, s.handleShowChart)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "chart_stats",
		Description: "Count, mean, sample standard deviation, min and max of every series of a chart.",
	}, s.handleChartStats)
}

// current must be called with mu held.
func (s *Server) current() ChartResult {
	info := s.ctrl.Info()
	res := ChartResult{
		Index:       s.ctrl.Cursor(),
		Counter:     s.ctrl.Counter(),
		Kind:        info.Kind.String(),
		Title:       info.Title,
		Description: info.Description,
		Renderer:    info.Renderer,
		Fallback:    info.Fallback,
	}
	if info.Err != nil {
		res.Error = info.Err.Error()
	}
	return res
}

func (s *Server) handleListCharts(_ context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, ListChartsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := ListChartsResult{Catalog: s.ctrl.CatalogName(), Current: s.ctrl.Cursor()}
	for i := 0; i < s.ctrl.Len(); i++ {
		d := s.ctrl.Descriptor(i)
		res.Charts = append(res.Charts, ChartEntry{
			Index:  i,
			Kind:   d.Kind.String(),
			Title:  d.Title(),
			Series: len(d.Config.Series),
			Points: d.PointCount(),
		})
	}
	return nil, res, nil
}

func (s *Server) handleCurrentChart(_ context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, ChartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.current(), nil
}

func (s *Server) handleNextChart(_ context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, ChartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Advance()
	s.logger.Debug("next_chart", zap.String("counter", s.ctrl.Counter()))
	return nil, s.current(), nil
}

func (s *Server) handlePreviousChart(_ context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, ChartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Retreat()
	s.logger.Debug("previous_chart", zap.String("counter", s.ctrl.Counter()))
	return nil, s.current(), nil
}

func (s *Server) handleShowChart(_ context.Context, _ *mcp.CallToolRequest, args ShowChartArgs) (*mcp.CallToolResult, ChartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if args.Index < 0 || args.Index >= s.ctrl.Len() {
		return nil, ChartResult{}, fmt.Errorf("index %d out of range [0, %d)", args.Index, s.ctrl.Len())
	}
	s.ctrl.Show(args.Index)
	return nil, s.current(), nil
}

func (s *Server) handleChartStats(ctx context.Context, _ *mcp.CallToolRequest, args ChartStatsArgs) (*mcp.CallToolResult, ChartStatsResult, error) {
	if s.stats == nil {
		return nil, ChartStatsResult{}, ErrStatsUnavailable
	}

	s.mu.Lock()
	idx := s.ctrl.Cursor()
	if args.Index != nil {
		idx = *args.Index
	}
	if idx < 0 || idx >= s.ctrl.Len() {
		n := s.ctrl.Len()
		s.mu.Unlock()
		return nil, ChartStatsResult{}, fmt.Errorf("index %d out of range [0, %d)", idx, n)
	}
	d := s.ctrl.Descriptor(idx)
	s.mu.Unlock()

	sums, err := s.stats.Summarize(ctx, d)
	if err != nil {
		return nil, ChartStatsResult{}, fmt.Errorf("failed to summarize %s: %w", d.Kind, err)
	}
	return nil, ChartStatsResult{Index: idx, Kind: d.Kind.String(), Stats: sums}, nil
}

// Start serves MCP on stdio until ctx is done or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting chartdeck MCP server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the controller's live frame.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Close()
	return nil
}
