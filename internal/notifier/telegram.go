package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amishk599/roomwatch/internal/model"
)

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends messages to a single chat through a bot.
type TelegramNotifier struct {
	token      string
	chatID     int64
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTelegramNotifier returns a notifier for the bot token and chat. The bot
// is not contacted until the first Notify.
func NewTelegramNotifier(token string, chatID int64, httpClient *http.Client, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		token:      token,
		chatID:     chatID,
		endpoint:   tgbotapi.APIEndpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithEndpoint overrides the Bot API URL format (see tgbotapi.APIEndpoint).
func (t *TelegramNotifier) WithEndpoint(endpoint string) *TelegramNotifier {
	t.endpoint = endpoint
	return t
}

// Notify sends title, body and link as one plain-text message.
func (t *TelegramNotifier) Notify(_ context.Context, msg model.Message) error {
	bot, err := tgbotapi.NewBotAPIWithClient(t.token, t.endpoint, t.httpClient)
	if err != nil {
		return fmt.Errorf("%w: telegram bot: %w", model.ErrNotify, err)
	}

	text := msg.Title + "\n\n" + msg.Body
	if msg.URL != "" {
		text += "\n\n" + msg.URLTitle + ": " + msg.URL
	}

	out := tgbotapi.NewMessage(t.chatID, text)
	out.DisableWebPagePreview = true

	if _, err := bot.Send(out); err != nil {
		return fmt.Errorf("%w: telegram send: %w", model.ErrNotify, err)
	}
	t.logger.Info("notification sent", "notifier", "telegram", "title", msg.Title)
	return nil
}
