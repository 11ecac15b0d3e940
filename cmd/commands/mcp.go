package commands

// Command to serve the slideshow over MCP on stdio
// Implements graceful shutdown for proper termination

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"chartdeck/internal/mcpserver"
	"chartdeck/internal/slideshow"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the slideshow as MCP tools on stdio",
	Long:  `Run a Model Context Protocol server that lets a client list charts, move through the slideshow and read dataset statistics.`,
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// stdout carries the protocol; console logs go to stderr
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	r, err := a.renderer()
	if err != nil {
		return err
	}
	src, err := a.cfg.Source()
	if err != nil {
		return err
	}
	cfg := a.slides()
	cfg.Surface = a.surface()
	ctrl, err := slideshow.Start(cfg, r, src, slideshow.Triggers{})
	if err != nil {
		a.logger.Error("slideshow unavailable", zap.Error(err))
		return err
	}

	var sp mcpserver.StatsProvider
	if repo := a.openStats(ctx); repo != nil {
		defer repo.Close()
		sp = repo
	}

	server, err := mcpserver.NewServer(mcpserver.Config{
		ServerName:    a.cfg.MCP.Name,
		ServerVersion: a.cfg.MCP.Version,
		Logger:        a.logger,
	}, ctrl, sp)
	if err != nil {
		ctrl.Close()
		return err
	}
	defer server.Close()

	err = server.Start(ctx)
	if errors.Is(err, context.Canceled) {
		a.logger.Info("shutdown signal received, MCP server stopped")
		return nil
	}
	return err
}
