package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/amishk599/roomwatch/internal/app"
	"github.com/amishk599/roomwatch/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a test notification using the configured notifier.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	n := app.NewNotifier(cfg, logger)
	if err := n.Notify(context.Background(), notifier.TestMessage(cfg.TargetURL)); err != nil {
		logger.Error("test notification failed", "error", err)
		return err
	}
	logger.Info("test notification sent successfully", "notifier", cfg.Notification.Type)
	return nil
}
