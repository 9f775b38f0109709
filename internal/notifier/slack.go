package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amishk599/roomwatch/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier sends vacancy alerts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify posts msg as a single Block Kit message.
func (s *SlackNotifier) Notify(ctx context.Context, msg model.Message) error {
	body, err := json.Marshal(buildPayload(msg))
	if err != nil {
		return fmt.Errorf("%w: marshal slack payload: %v", model.ErrNotify, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create slack request: %v", model.ErrNotify, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post to slack: %w", model.ErrNotify, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: slack: %w", model.ErrNotify, model.NewHTTPError(resp.StatusCode, nil))
	}
	s.logger.Info("notification sent", "notifier", "slack", "title", msg.Title)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style,omitempty"`
}

func buildPayload(msg model.Message) slackPayload {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: msg.Title},
		},
		{
			Type: "section",
			Text: &slackText{Type: "plain_text", Text: msg.Body},
		},
	}

	if msg.URL != "" {
		button := slackElement{
			Type: "button",
			Text: slackText{Type: "plain_text", Text: msg.URLTitle},
			URL:  msg.URL,
		}
		// Elevated messages get the highlighted button.
		if msg.Priority != nil && *msg.Priority > 0 {
			button.Style = "primary"
		}
		blocks = append(blocks, slackBlock{Type: "actions", Elements: []slackElement{button}})
	}

	return slackPayload{Text: msg.Title, Blocks: blocks}
}
