package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/roomwatch/internal/app"
	"github.com/amishk599/roomwatch/internal/config"
)

var (
	cfgPath string
	debug   bool

	// logOutput receives all log lines; results go to the command's stdout.
	logOutput io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "roomwatch",
	Short: "Room vacancy watcher",
	Long: "RoomWatch checks a listings page, summarizes it with an LLM and pushes a " +
		"notification when the vacancy situation changes.",
	// Default to `run` so that `roomwatch` with no args performs one check,
	// which is what cron entries and container schedulers invoke.
	RunE:          runRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to an optional YAML config file (default: ROOMWATCH_CONFIG env var)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > ROOMWATCH_CONFIG env var > environment only.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("ROOMWATCH_CONFIG")
	}
	return config.Load(path)
}

// setup loads the config and returns it with a logger at the configured
// level. Errors are logged before being returned.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		setupLogger("info").Error("failed to load config", "error", err)
		return nil, nil, err
	}
	return cfg, setupLogger(cfg.LogLevel), nil
}

func setupLogger(level string) *slog.Logger {
	if debug {
		level = "debug"
	}
	return app.NewLogger(level, logOutput)
}
