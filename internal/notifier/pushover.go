package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/roomwatch/internal/model"
)

const (
	// PushoverEndpoint is the Pushover message API.
	PushoverEndpoint = "https://api.pushover.net/1/messages.json"

	// PushoverTimeout bounds a single delivery attempt.
	PushoverTimeout = 10 * time.Second
)

// Ensure PushoverNotifier implements model.Notifier.
var _ model.Notifier = (*PushoverNotifier)(nil)

// PushoverNotifier posts messages to the Pushover API.
type PushoverNotifier struct {
	endpoint   string
	token      string
	user       string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPushoverNotifier returns a notifier for the given app token and user
// key. A nil client gets one with PushoverTimeout.
func NewPushoverNotifier(token, user string, httpClient *http.Client, logger *slog.Logger) *PushoverNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: PushoverTimeout}
	}
	return &PushoverNotifier{
		endpoint:   PushoverEndpoint,
		token:      token,
		user:       user,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithEndpoint overrides the API URL.
func (p *PushoverNotifier) WithEndpoint(endpoint string) *PushoverNotifier {
	p.endpoint = endpoint
	return p
}

// Notify posts msg as form fields. Failure wraps model.ErrNotify.
func (p *PushoverNotifier) Notify(ctx context.Context, msg model.Message) error {
	form := url.Values{
		"token":     {p.token},
		"user":      {p.user},
		"title":     {msg.Title},
		"message":   {msg.Body},
		"url":       {msg.URL},
		"url_title": {msg.URLTitle},
	}
	if msg.Priority != nil {
		form.Set("priority", strconv.Itoa(*msg.Priority))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: create pushover request: %v", model.ErrNotify, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post to pushover: %w", model.ErrNotify, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: pushover: %w", model.ErrNotify, model.NewHTTPError(resp.StatusCode, body))
	}

	p.logger.Info("notification sent", "notifier", "pushover", "title", msg.Title)
	return nil
}
