package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Mode selects which report variant the pipeline produces. It is fixed at
// config time; structured and free-text reports never mix within a run.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeFreeText   Mode = "freetext"
)

// ParseMode maps a config string onto a Mode. Empty means structured.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeStructured:
		return ModeStructured, nil
	case ModeFreeText:
		return ModeFreeText, nil
	default:
		return "", fmt.Errorf("unknown report mode %q (want %q or %q)", s, ModeStructured, ModeFreeText)
	}
}

// Room is a single room entry as reported by the summarizer.
type Room struct {
	Room    string `json:"room"`
	Details string `json:"details"`
}

// VacancyReport is the structured summarizer output.
type VacancyReport struct {
	HasVacancies bool   `json:"has_vacancies"`
	VacancyCount int    `json:"vacancy_count"`
	Summary      string `json:"summary"`
	Rooms        []Room `json:"rooms"`
	Notes        string `json:"notes"`
}

// Report holds exactly one variant: Vacancy when Mode is structured, Text
// when Mode is free-text.
type Report struct {
	Mode    Mode
	Vacancy *VacancyReport
	Text    string
}

// MarshalJSON renders the active variant only: an object for structured
// reports, a plain string for free-text ones.
func (r Report) MarshalJSON() ([]byte, error) {
	if r.Mode == ModeFreeText {
		return json.Marshal(r.Text)
	}
	if r.Vacancy == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Vacancy)
}

// PersistedState is the on-disk snapshot of the last completed structured run.
type PersistedState struct {
	VacancyReport
	LastCheck time.Time `json:"last_check"`
}

// Message is a push notification derived from a Report. Priority is nil when
// the endpoint default should apply.
type Message struct {
	Title    string
	Body     string
	Priority *int
	URL      string
	URLTitle string
}

// Result is the outcome of one pipeline run.
type Result struct {
	Report   Report
	Notified bool
	Saved    bool
}

// PageFetcher retrieves the raw markup of the watched page.
type PageFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Extractor turns raw markup into normalized plain text.
type Extractor interface {
	Extract(markup string) (string, error)
}

// Summarizer turns extracted page text into a Report.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (Report, error)
}

// StateStore persists the most recent structured report. Load returns nil
// with a nil error when nothing has been stored yet.
type StateStore interface {
	Load(ctx context.Context) (*PersistedState, error)
	Save(ctx context.Context, report VacancyReport, now time.Time) error
}

// Notifier delivers a notification message.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// MarshalJSON encodes a Result as its report.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Report)
}
