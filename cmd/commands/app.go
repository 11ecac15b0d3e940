package commands

import (
	"context"
	"errors"
	"fmt"

	"chartdeck/internal/config"
	"chartdeck/internal/logging"
	"chartdeck/internal/render"
	"chartdeck/internal/slideshow"
	"chartdeck/internal/stats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every command needs: the loaded config and a logger.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
}

// setup loads the configuration and opens the log. console allows the
// stderr core when log.console is set.
func setup(cmd *cobra.Command, console bool) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{ConfigFile: path, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Dir:     cfg.Log.Dir,
		Level:   cfg.Log.Level,
		Console: console && cfg.Log.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return &app{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// renderer resolves render.primary behind a circuit breaker. "none" yields
// a nil renderer, which the slideshow reports as unavailable.
func (a *app) renderer() (render.Renderer, error) {
	r, err := render.ByName(a.cfg.Render.Primary)
	if errors.Is(err, render.ErrUnavailable) {
		a.logger.Warn("no primary renderer configured")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return render.Breaker(r, render.BreakerSettings{
		Failures: a.cfg.Render.BreakerFailures,
		Timeout:  a.cfg.Render.BreakerTimeout,
		Logger:   a.logger,
	}), nil
}

func (a *app) slides() slideshow.Config {
	return slideshow.Config{
		Fallback: a.cfg.Render.Fallback,
		Logger:   a.logger,
	}
}

// surface is where the primary renderer draws outside the TUI.
func (a *app) surface() render.Surface {
	if a.cfg.Render.Primary == render.NameTerminal {
		return render.Surface{Width: 80, Height: 20, Terminal: true}
	}
	return a.cfg.Surface()
}

// openStats opens the DuckDB repo. Statistics are optional everywhere, so a
// failure is logged and nil returned.
func (a *app) openStats(ctx context.Context) *stats.Repo {
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := stats.Open(ctx, a.cfg.Stats.DSN)
	if err != nil {
		a.logger.Warn("dataset statistics disabled", zap.String("dsn", a.cfg.Stats.DSN), zap.Error(err))
		return nil
	}
	return repo
}
