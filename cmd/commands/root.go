package commands

// Root command for Cobra CLI
// Without a subcommand chartdeck opens the terminal slideshow

import (
	"chartdeck/internal/config"
	"chartdeck/ui/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "chartdeck",
	Short: "Chartdeck - a slideshow of chart types for the terminal",
	Long: `Chartdeck walks through a catalog of chart kinds (line, bar, pie, scatter, box and more)
with a description and use cases for each, and can list, export or serve the catalog over MCP.`,
	Version:      "1.0.0",
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("no-mouse", false, "disable mouse buttons (env: CHARTDECK_UI_MOUSE=false)")
	rootCmd.Flags().Bool("no-animate", false, "disable the indicator animation (env: CHARTDECK_UI_ANIMATE=false)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Bubble Tea owns the terminal, so the log only goes to the file
	a, err := setup(cmd, false)
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

	repo := a.openStats(cmd.Context())
	if repo != nil {
		defer repo.Close()
	}

	opts := tui.Options{
		Renderer: r,
		Source:   src,
		Slides:   a.slides(),
		UI:       a.cfg.UI,
		Logger:   a.logger,
	}
	// a nil *stats.Repo must not become a non-nil interface
	if repo != nil {
		opts.Stats = repo
	}

	a.logger.Info("starting slideshow",
		zap.String("renderer", a.cfg.Render.Primary),
		zap.String("catalog", a.cfg.Catalog.Variant))
	return tui.Start(opts)
}
