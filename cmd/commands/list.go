package commands

// Command to print the catalog
// Probes every chart with the primary renderer and adds DuckDB statistics

import (
	"os"

	"chartdeck/internal/output"
	"chartdeck/ui/console"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the chart catalog",
	Long:  `Print every chart of the catalog with its data size, the renderer that can draw it and per-series statistics.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	src, err := a.cfg.Source()
	if err != nil {
		return err
	}
	r, err := a.renderer()
	if err != nil {
		return err
	}

	var sum output.Summarizer
	if repo := a.openStats(cmd.Context()); repo != nil {
		defer repo.Close()
		sum = repo
	}

	view, err := output.RunPipeline(cmd.Context(), src, r, a.surface(), sum)
	if err != nil {
		console.Errorf(os.Stderr, "%v", err)
		return err
	}
	console.Print(cmd.OutOrStdout(), *view)
	return nil
}
