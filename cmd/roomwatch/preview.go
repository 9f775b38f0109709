package main

import (
	"github.com/spf13/cobra"

	"github.com/amishk599/roomwatch/internal/app"
	"github.com/amishk599/roomwatch/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Summarize the page in an interactive view",
	Long:  "Fetches and summarizes the page and shows the report in the terminal. Nothing is sent and state is not read or written.",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	// Keep log lines from tearing the full-screen view.
	if !debug {
		logger = setupLogger("error")
	}

	a, err := app.Build(cfg, logger, app.Options{DryRun: true})
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		return err
	}
	defer a.Close()

	if _, err := preview.Run(cfg.TargetURL, a.Runner.Preview); err != nil {
		logger.Error("preview failed", "error", err)
		return err
	}
	return nil
}
