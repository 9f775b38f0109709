package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/roomwatch/internal/app"
	"github.com/amishk599/roomwatch/internal/model"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Check the page once, notify on change, exit",
	Long: "One-shot check: fetches the page, summarizes it, compares with the last saved " +
		"report and notifies if anything changed. Prints the result as JSON.",
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the notification instead of sending it and do not write state")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the notification instead of sending it and do not write state")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	a, err := app.Build(cfg, logger, app.Options{DryRun: dryRun})
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := a.Runner.Run(ctx)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}

func printResult(w io.Writer, res *model.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	banner := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\nROOMWATCH RESULTS\n%s\n%s\n", banner, banner, data)
	return nil
}
