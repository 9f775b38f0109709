package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/roomwatch/internal/app"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the saved report",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the last saved report",
	RunE:  runStateShow,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
}

func runStateShow(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	st, closer, err := app.NewStore(cfg)
	if err != nil {
		logger.Error("failed to open state", "error", err)
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	prev, err := st.Load(context.Background())
	if err != nil {
		logger.Error("failed to load state", "error", err)
		return err
	}
	if prev == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "no saved state (%s: %s)\n", cfg.State.Backend, cfg.State.Path)
		return nil
	}

	data, err := json.MarshalIndent(prev, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
