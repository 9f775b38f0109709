// Package app wires configuration into a ready-to-run pipeline.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amishk599/roomwatch/internal/ai"
	"github.com/amishk599/roomwatch/internal/config"
	"github.com/amishk599/roomwatch/internal/extract"
	"github.com/amishk599/roomwatch/internal/fetcher"
	"github.com/amishk599/roomwatch/internal/model"
	"github.com/amishk599/roomwatch/internal/notifier"
	"github.com/amishk599/roomwatch/internal/pipeline"
	"github.com/amishk599/roomwatch/internal/store"
)

const (
	llmTimeout    = 60 * time.Second
	notifyTimeout = 10 * time.Second
)

// Options adjusts how Build wires the pipeline.
type Options struct {
	// DryRun logs notifications instead of sending them and never writes state.
	DryRun bool
}

// App holds the wired components for one configuration.
type App struct {
	Config   *config.Config
	Runner   *pipeline.Runner
	Store    model.StateStore
	Notifier model.Notifier

	closers []io.Closer
}

// Close releases resources held by the state backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewLogger returns a text logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Build constructs every component named by cfg.
func Build(cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	a := &App{Config: cfg}

	pageFetcher := NewFetcher(cfg)
	extractor, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	summarizer := NewSummarizer(cfg, logger)

	if opts.DryRun {
		logger.Info("dry-run mode enabled, notifications are logged and state is not written")
		a.Store = store.NewNopStore()
		a.Notifier = notifier.NewLogNotifier(logger)
	} else {
		st, closer, err := NewStore(cfg)
		if err != nil {
			return nil, err
		}
		a.Store = st
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
		a.Notifier = NewNotifier(cfg, logger)
	}

	a.Runner = pipeline.NewRunner(pageFetcher, extractor, summarizer, a.Store, a.Notifier,
		cfg.Mode, cfg.TargetURL, logger)
	return a, nil
}

// NewFetcher returns the page fetcher for cfg.Fetch.Mode.
func NewFetcher(cfg *config.Config) model.PageFetcher {
	if cfg.Fetch.Mode == "browser" {
		return fetcher.NewBrowserFetcher(cfg.TargetURL, cfg.Fetch.ChromeBin)
	}
	return fetcher.NewHTTPFetcher(cfg.TargetURL, nil)
}

// NewExtractor returns the text extractor for cfg.Fetch.ExtractMode.
func NewExtractor(cfg *config.Config) (model.Extractor, error) {
	if cfg.Fetch.ExtractMode == "readability" {
		e, err := extract.NewReadabilityExtractor(cfg.TargetURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrConfig, err)
		}
		return e, nil
	}
	return extract.MarkupExtractor{}, nil
}

// NewSummarizer returns an LLM summarizer for the configured provider and mode.
func NewSummarizer(cfg *config.Config, logger *slog.Logger) *ai.LLMSummarizer {
	client := &http.Client{Timeout: llmTimeout}

	var provider ai.LLMProvider
	switch cfg.LLM.Provider {
	case "openai":
		provider = ai.NewOpenAIProvider(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model,
			cfg.Mode == model.ModeStructured, client)
	default:
		provider = ai.NewAnthropicProvider(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, client)
	}
	logger.Debug("llm provider configured", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return ai.NewLLMSummarizer(provider, ai.TemplateFor(cfg.Mode), cfg.Mode, logger)
}

// NewStore opens the state backend. The closer is nil when nothing needs
// releasing.
func NewStore(cfg *config.Config) (model.StateStore, io.Closer, error) {
	switch cfg.State.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.State.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "nop":
		return store.NewNopStore(), nil, nil
	default:
		return store.NewFileStore(cfg.State.Path), nil, nil
	}
}

// NewNotifier returns the notifier for cfg.Notification.Type.
func NewNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	n := cfg.Notification
	switch n.Type {
	case "slack":
		logger.Debug("using slack notifier")
		return notifier.NewSlackNotifier(n.SlackWebhookURL, &http.Client{Timeout: notifyTimeout}, logger)
	case "telegram":
		logger.Debug("using telegram notifier")
		return notifier.NewTelegramNotifier(n.TelegramToken, n.TelegramChatID, &http.Client{Timeout: notifyTimeout}, logger)
	case "log":
		return notifier.NewLogNotifier(logger)
	default:
		return notifier.NewPushoverNotifier(n.PushoverToken, n.PushoverUser, nil, logger)
	}
}
