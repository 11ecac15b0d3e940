package commands

// Command to export the catalog
// Writes one PNG and SVG per chart plus an xlsx workbook with native charts
// Implements graceful shutdown: an interrupt cancels the remaining charts

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chartdeck/internal/export"
	"chartdeck/ui/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every chart to PNG, SVG and an xlsx workbook",
	Long:  `Render the catalog to image files and one workbook with a sheet and native chart per catalog entry.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "output directory (env: CHARTDECK_EXPORT_DIR)")
	exportCmd.Flags().StringSlice("format", nil, "formats to write: png, svg, xlsx (env: CHARTDECK_EXPORT_FORMATS)")
	exportCmd.Flags().Int("parallel", 0, "charts exported at once (env: CHARTDECK_EXPORT_CONCURRENCY)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	src, err := a.cfg.Source()
	if err != nil {
		return err
	}
	cat, err := src.Build()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	opts := export.Options{
		Dir:         a.cfg.Export.Dir,
		Formats:     a.cfg.Export.Formats,
		Concurrency: a.cfg.Export.Concurrency,
		Surface:     a.cfg.Surface(),
		Logger:      a.logger,
	}
	if repo := a.openStats(ctx); repo != nil {
		defer repo.Close()
		opts.Stats = repo
	}

	files, err := export.New(opts).Export(ctx, cat.All())
	if err != nil {
		a.logger.Error("export failed", zap.Error(err))
		console.Errorf(os.Stderr, "export failed: %v", err)
		return err
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
