package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"text/template"

	"github.com/amishk599/roomwatch/internal/model"
)

// MaxContentChars is how much of the extracted page text goes into the prompt.
const MaxContentChars = 4000

// parseFailedNote is recorded in Notes when the structured response was not JSON.
const parseFailedNote = "Could not parse structured data"

// Ensure LLMSummarizer implements model.Summarizer.
var _ model.Summarizer = (*LLMSummarizer)(nil)

// LLMSummarizer renders a prompt from page text, makes one completion call
// and turns the response into a Report of the configured mode.
type LLMSummarizer struct {
	provider LLMProvider
	tmpl     *template.Template
	mode     model.Mode
	logger   *slog.Logger
}

// NewLLMSummarizer creates a summarizer for mode using tmpl as the prompt.
func NewLLMSummarizer(provider LLMProvider, tmpl *template.Template, mode model.Mode, logger *slog.Logger) *LLMSummarizer {
	return &LLMSummarizer{
		provider: provider,
		tmpl:     tmpl,
		mode:     mode,
		logger:   logger,
	}
}

// Summarize implements model.Summarizer. Provider failures wrap
// model.ErrSummarize. In structured mode an unparseable response degrades to
// a fallback report instead of failing.
func (s *LLMSummarizer) Summarize(ctx context.Context, text string) (model.Report, error) {
	var promptBuf bytes.Buffer
	if err := s.tmpl.Execute(&promptBuf, struct{ Content string }{
		Content: truncateRunes(text, MaxContentChars),
	}); err != nil {
		return model.Report{}, fmt.Errorf("%w: render prompt: %v", model.ErrSummarize, err)
	}

	raw, err := s.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return model.Report{}, fmt.Errorf("%w: llm complete: %w", model.ErrSummarize, err)
	}

	if s.mode == model.ModeFreeText {
		return model.Report{Mode: model.ModeFreeText, Text: strings.TrimSpace(raw)}, nil
	}

	report, err := parseVacancyReport(raw)
	if err != nil {
		s.logger.Warn("llm response is not valid JSON, using fallback report", "error", err)
		report = fallbackReport(raw)
	}
	s.logger.Info("llm analysis complete", "vacancies", report.VacancyCount, "has_vacancies", report.HasVacancies)
	return model.Report{Mode: model.ModeStructured, Vacancy: report}, nil
}

var codeFenceRegex = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.+?)\\s*```\\s*$")

// parseVacancyReport decodes a structured response. A surrounding markdown
// code fence is tolerated; anything else must be a bare JSON object.
// Valid JSON whose field types do not match the schema (a quoted
// vacancy_count, say) is treated as unparseable.
func parseVacancyReport(raw string) (*model.VacancyReport, error) {
	text := strings.TrimSpace(raw)
	if m := codeFenceRegex.FindStringSubmatch(text); len(m) > 1 {
		text = m[1]
	}

	var report model.VacancyReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return nil, fmt.Errorf("unmarshal vacancy report: %w", err)
	}
	if report.Rooms == nil {
		report.Rooms = []model.Room{}
	}
	return &report, nil
}

// fallbackReport wraps an unparseable response. Vacancy is guessed from
// keywords in the raw text.
func fallbackReport(raw string) *model.VacancyReport {
	lower := strings.ToLower(raw)
	return &model.VacancyReport{
		HasVacancies: strings.Contains(lower, "available") || strings.Contains(lower, "vacancy"),
		VacancyCount: 0,
		Summary:      raw,
		Rooms:        []model.Room{},
		Notes:        parseFailedNote,
	}
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
