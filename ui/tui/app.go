package tui

import (
	"context"
	"errors"
	"time"

	"chartdeck/internal/catalog"
	"chartdeck/internal/config"
	"chartdeck/internal/render"
	"chartdeck/internal/slideshow"
	"chartdeck/internal/stats"
	"chartdeck/ui/tui/components"
	"chartdeck/ui/tui/state"
	"chartdeck/ui/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

const statsTimeout = 10 * time.Second

// ErrStatsUnavailable is shown on the data page when no database is wired.
var ErrStatsUnavailable = errors.New("statistics are not available")

// StatsProvider computes per-series statistics; *stats.Repo implements it.
type StatsProvider interface {
	Summarize(ctx context.Context, d catalog.Descriptor) ([]stats.Summary, error)
}

// Options are the collaborators of the terminal UI.
type Options struct {
	Renderer render.Renderer
	Source   catalog.Source
	// Slides carries the fallback settings; panel and surface are owned
	// by the model.
	Slides slideshow.Config
	Stats  StatsProvider
	UI     config.UIConfig
	Logger *zap.Logger
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	ctrl   *slideshow.Controller
	stats  StatsProvider
	ui     config.UIConfig
	logger *zap.Logger

	prev, next *slideshow.Signal
	panel      *components.InfoPanel
	indicator  *components.Indicator
	table      *components.DataTable

	keys       KeyMap
	help       help.Model
	state      state.AppState
	spinner    spinner.Model
	animCursor float64
	velocity   float64 // Physics velocity
	spring     harmonica.Spring
	mouseX     int
	mouseY     int
	quitting   bool
	width      int
	height     int

	// inBounds resolves clicks; bubblezone unless replaced in tests.
	inBounds func(id string, msg tea.MouseMsg) bool
}

// Messages
type AnimateMsg time.Time
type StatsLoadedMsg struct {
	Index int
	Stats []stats.Summary
	Err   error
}

// InitialModel builds the controller and binds the key and button signals
// to it. When that fails the model opens on the error page with nothing
// bound.
func InitialModel(opts Options) MainModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Increased frequency (12.0) for faster response and damping (0.9) to prevent overshoot
	spring := harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9)

	m := MainModel{
		stats:     opts.Stats,
		ui:        opts.UI,
		logger:    logger,
		prev:      &slideshow.Signal{},
		next:      &slideshow.Signal{},
		panel:     components.NewInfoPanel(opts.UI.InfoStyle, infoWidth(0)),
		indicator: &components.Indicator{},
		table:     components.NewDataTable(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		spring:    spring,
		inBounds: func(id string, msg tea.MouseMsg) bool {
			return zone.Get(id).InBounds(msg)
		},
	}

	cfg := opts.Slides
	cfg.Panel = m.panel
	cfg.Surface = chartSurface(0, 0)
	cfg.Logger = logger
	ctrl, err := slideshow.Start(cfg, opts.Renderer, opts.Source, slideshow.Triggers{
		Previous: m.prev,
		Next:     m.next,
	})
	if err != nil {
		logger.Error("slideshow unavailable", zap.Error(err))
		m.state = state.AppState{CurrentPage: state.PageError, Err: err}
		return m
	}
	m.ctrl = ctrl
	m.sync()
	m.animCursor = float64(m.state.Cursor)
	return m
}

func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.ui.Animate {
		cmds = append(cmds, animateCmd())
	}
	return tea.Batch(cmds...)
}

// Commands
func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func fetchStatsCmd(p StatsProvider, index int, d catalog.Descriptor) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()
		sums, err := p.Summarize(ctx, d)
		return StatsLoadedMsg{Index: index, Stats: sums, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case StatsLoadedMsg:
		return m.handleStatsLoadedMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.state.CurrentPage == state.PageError {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.next.Fire()
		return m, m.moved()

	case key.Matches(msg, m.keys.Prev):
		m.prev.Fire()
		return m, m.moved()

	case key.Matches(msg, m.keys.Jump):
		i := jumpIndex(msg.String())
		if i >= m.ctrl.Len() {
			return m, nil
		}
		m.ctrl.Show(i)
		return m, m.moved()

	case key.Matches(msg, m.keys.Data):
		if m.state.CurrentPage == state.PageData {
			m.state.CurrentPage = state.PageSlides
			return m, nil
		}
		m.state.CurrentPage = state.PageData
		return m, m.loadData()

	case key.Matches(msg, m.keys.Help):
		if m.state.CurrentPage == state.PageHelp {
			m.state.CurrentPage = state.PageSlides
		} else {
			m.state.CurrentPage = state.PageHelp
		}
		m.help.ShowAll = m.state.CurrentPage == state.PageHelp

	case key.Matches(msg, m.keys.Back):
		m.state.CurrentPage = state.PageSlides
		m.help.ShowAll = false
	}
	return m, nil
}

// moved refreshes the state after the cursor changed and reloads the data
// page when it is open.
func (m *MainModel) moved() tea.Cmd {
	m.sync()
	if !m.ui.Animate {
		m.animCursor = float64(m.state.Cursor)
	}
	if m.state.CurrentPage == state.PageData {
		return m.loadData()
	}
	return nil
}

func (m *MainModel) loadData() tea.Cmd {
	d := m.ctrl.Current()
	m.table.Load(d)
	m.state.Stats = nil
	m.state.StatsIndex = m.state.Cursor

	if m.stats == nil {
		m.state.StatsLoading = false
		m.state.StatsErr = ErrStatsUnavailable
		return nil
	}
	m.state.StatsLoading = true
	m.state.StatsErr = nil
	return tea.Batch(m.spinner.Tick, fetchStatsCmd(m.stats, m.state.Cursor, d))
}

func (m *MainModel) handleStatsLoadedMsg(msg StatsLoadedMsg) (tea.Model, tea.Cmd) {
	// a result for a slide we already left
	if msg.Index != m.state.StatsIndex {
		return m, nil
	}
	m.state.StatsLoading = false
	m.state.Stats = msg.Stats
	m.state.StatsErr = msg.Err
	if msg.Err != nil {
		m.logger.Warn("stats failed", zap.Int("index", msg.Index), zap.Error(msg.Err))
	}
	return m, nil
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	var v float64 = m.velocity
	m.animCursor, v = m.spring.Update(m.animCursor, float64(m.state.Cursor), v)
	m.velocity = v
	return m, animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.panel.SetSize(infoWidth(msg.Width), 0)
	m.indicator.SetSize(msg.Width-24, 1)
	m.table.SetSize(msg.Width-6, msg.Height-16)

	if m.ctrl != nil {
		m.ctrl.Resize(chartSurface(msg.Width, msg.Height))
		m.sync()
	}
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if !m.ui.Mouse || msg.Action != tea.MouseActionRelease || m.state.CurrentPage != state.PageSlides {
		return m, nil
	}
	switch {
	case m.inBounds(views.PrevZone, msg):
		m.prev.Fire()
		return m, m.moved()
	case m.inBounds(views.NextZone, msg):
		m.next.Fire()
		return m, m.moved()
	}
	for i := 0; i < m.ctrl.Len(); i++ {
		if m.inBounds(components.DotZone(i), msg) {
			m.ctrl.Show(i)
			return m, m.moved()
		}
	}
	return m, nil
}

// sync copies what the views need from the controller and its panel.
func (m *MainModel) sync() {
	info := m.panel.Info()
	m.state.Catalog = m.ctrl.CatalogName()
	m.state.Cursor = m.ctrl.Cursor()
	m.state.Total = m.ctrl.Len()
	m.state.Counter = m.panel.Counter()
	m.state.Descriptor = m.ctrl.Current()
	m.state.Renderer = info.Renderer
	m.state.Fallback = info.Fallback
	m.state.RenderErr = info.Err

	m.indicator.Total = m.state.Total
	m.indicator.Cursor = m.state.Cursor
}

func (m *MainModel) chartView() string {
	if m.ctrl == nil {
		return ""
	}
	f := m.ctrl.Frame()
	if f.Text != "" || f.Image == nil {
		return f.Text
	}
	s := m.ctrl.Surface()
	return render.Blocks(f.Image, s.Width, s.Height)
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	m.indicator.Anim = m.animCursor
	return views.Render(m.state, views.ViewProps{
		Width:         m.width,
		Height:        m.height,
		MouseX:        m.mouseX,
		MouseY:        m.mouseY,
		AnimCursor:    m.animCursor,
		SpinnerView:   m.spinner.View(),
		ChartView:     m.chartView(),
		InfoView:      m.panel.View(),
		IndicatorView: m.indicator.View(),
		TableView:     m.table.View(),
		HelpView:      m.help.View(m.keys),
	})
}

// Close releases the live frame.
func (m *MainModel) Close() {
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// chartSurface is the terminal area inside the chart card. Zero sizes mean
// the window size is not known yet.
func chartSurface(width, height int) render.Surface {
	if width == 0 || height == 0 {
		return render.Surface{Width: 72, Height: 18, Terminal: true}
	}
	return render.Surface{
		Width:    max(20, views.ChartWidth(width)-8),
		Height:   max(6, height-14),
		Terminal: true,
	}
}

func infoWidth(width int) int {
	if width == 0 {
		return 40
	}
	return width - views.ChartWidth(width) - 10
}

// Start runs the slideshow until the user quits. A slideshow that could
// not be built is shown on the error page and its error is returned after
// the program exits.
func Start(opts Options) error {
	m := InitialModel(opts)
	defer m.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&m, progOpts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.state.Err
}
