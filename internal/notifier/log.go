package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/roomwatch/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the given logger instead of a device.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each message via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs title, body, priority and link. Returns nil (logging does not fail).
func (n *LogNotifier) Notify(_ context.Context, msg model.Message) error {
	args := []any{"title", msg.Title, "body", msg.Body, "url", msg.URL}
	if msg.Priority != nil {
		args = append(args, "priority", *msg.Priority)
	}
	n.logger.Info("notification", args...)
	return nil
}
