// Package pipeline runs one check of the watched page end to end.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/roomwatch/internal/detect"
	"github.com/amishk599/roomwatch/internal/model"
	"github.com/amishk599/roomwatch/internal/notifier"
)

// Runner owns the full pipeline for the watched page:
// fetch → extract → summarize → compare → notify → save.
type Runner struct {
	fetcher    model.PageFetcher
	extractor  model.Extractor
	summarizer model.Summarizer
	store      model.StateStore
	notifier   model.Notifier
	mode       model.Mode
	targetURL  string
	logger     *slog.Logger
	now        func() time.Time
}

// NewRunner creates a runner wired with all its dependencies.
func NewRunner(
	fetcher model.PageFetcher,
	extractor model.Extractor,
	summarizer model.Summarizer,
	store model.StateStore,
	n model.Notifier,
	mode model.Mode,
	targetURL string,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		fetcher:    fetcher,
		extractor:  extractor,
		summarizer: summarizer,
		store:      store,
		notifier:   n,
		mode:       mode,
		targetURL:  targetURL,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for last_check.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run performs one check. A failing step is logged and its error returned;
// the stored state is left as it was.
func (r *Runner) Run(ctx context.Context) (*model.Result, error) {
	res, err := r.run(ctx)
	if err != nil {
		r.logger.Error("run failed", "url", r.targetURL, "error", err)
		return nil, err
	}
	return res, nil
}

func (r *Runner) run(ctx context.Context) (*model.Result, error) {
	r.logger.Info("checking page", "url", r.targetURL, "mode", r.mode)

	report, err := r.Preview(ctx)
	if err != nil {
		return nil, err
	}

	if report.Mode == model.ModeFreeText {
		if err := r.notifier.Notify(ctx, notifier.BuildMessage(report, r.targetURL)); err != nil {
			return nil, fmt.Errorf("notifying: %w", err)
		}
		return &model.Result{Report: report, Notified: true}, nil
	}

	current := *report.Vacancy
	previous, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn("could not load previous state, treating as first run", "error", err)
		previous = nil
	}

	res := &model.Result{Report: report}
	reason := detect.Compare(current, previous)
	if reason != detect.ReasonNone {
		r.logger.Info("change detected", "reason", string(reason),
			"has_vacancies", current.HasVacancies, "vacancy_count", current.VacancyCount)
		if err := r.notifier.Notify(ctx, notifier.BuildMessage(report, r.targetURL)); err != nil {
			return nil, fmt.Errorf("notifying: %w", err)
		}
		res.Notified = true
	} else {
		r.logger.Info("no changes detected")
	}

	if err := r.store.Save(ctx, current, r.now()); err != nil {
		r.logger.Error("could not save state", "error", err)
	} else {
		res.Saved = true
	}

	r.logger.Info("run complete",
		"has_vacancies", current.HasVacancies,
		"vacancy_count", current.VacancyCount,
		"notified", res.Notified,
		"saved", res.Saved,
	)
	return res, nil
}

// Preview fetches, extracts and summarizes the page without touching state
// or sending anything.
func (r *Runner) Preview(ctx context.Context) (model.Report, error) {
	markup, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("fetching page: %w", err)
	}

	text, err := r.extractor.Extract(markup)
	if err != nil {
		return model.Report{}, fmt.Errorf("extracting text: %w", err)
	}
	r.logger.Debug("extracted page text", "chars", len(text))

	report, err := r.summarizer.Summarize(ctx, text)
	if err != nil {
		return model.Report{}, fmt.Errorf("summarizing: %w", err)
	}
	if report.Mode == model.ModeStructured && report.Vacancy == nil {
		return model.Report{}, fmt.Errorf("summarizing: %w: structured report missing", model.ErrSummarize)
	}
	return report, nil
}
