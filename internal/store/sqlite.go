package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/amishk599/roomwatch/internal/model"
	"github.com/amishk599/roomwatch/migrations"
)

// Ensure SQLiteStore implements model.StateStore.
var _ model.StateStore = (*SQLiteStore)(nil)

// SQLiteStore keeps the last report in a single-row table. It holds no
// history: Save overwrites row 1.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and applies
// pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite db: %w", model.ErrStateIO, err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pinging sqlite db: %w", model.ErrStateIO, err)
	}

	if _, err := migrations.Apply(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", model.ErrStateIO, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the stored state, or nil when no run has been saved yet.
func (s *SQLiteStore) Load(ctx context.Context) (*model.PersistedState, error) {
	var reportJSON, lastCheck string
	err := s.db.QueryRowContext(ctx,
		"SELECT report, last_check FROM vacancy_state WHERE id = 1",
	).Scan(&reportJSON, &lastCheck)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading state: %w", model.ErrStateIO, err)
	}

	var state model.PersistedState
	if err := json.Unmarshal([]byte(reportJSON), &state.VacancyReport); err != nil {
		return nil, fmt.Errorf("%w: decoding stored report: %w", model.ErrStateIO, err)
	}
	state.LastCheck, _ = parseLastCheck(lastCheck)
	return &state, nil
}

// Save replaces the stored report and stamps it with now.
func (s *SQLiteStore) Save(ctx context.Context, report model.VacancyReport, now time.Time) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: encoding report: %w", model.ErrStateIO, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO vacancy_state (id, report, last_check) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET report = excluded.report, last_check = excluded.last_check`,
		string(reportJSON), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: saving state: %w", model.ErrStateIO, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
