package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/amishk599/roomwatch/internal/model"
)

// Ensure FileStore implements model.StateStore.
var _ model.StateStore = (*FileStore)(nil)

// FileStore keeps the last report as an indented JSON document. Each Save
// replaces the whole file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path. The file is
// not touched until the first Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the state file location.
func (s *FileStore) Path() string { return s.path }

// Load returns the stored state, or nil when the file does not exist or
// holds JSON null. Unreadable or corrupt files return an error wrapping
// model.ErrStateIO.
func (s *FileStore) Load(_ context.Context) (*model.PersistedState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", model.ErrStateIO, s.path, err)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", model.ErrStateIO, s.path, err)
	}

	state := &model.PersistedState{VacancyReport: doc.VacancyReport}
	// A missing or unreadable last_check leaves the zero time; the report
	// fields are still good for comparison.
	var stamp string
	if json.Unmarshal(doc.LastCheck, &stamp) == nil {
		state.LastCheck, _ = parseLastCheck(stamp)
	}
	return state, nil
}

// stateDocument is the on-disk shape. last_check is decoded separately so a
// timestamp in an unexpected format does not discard the report.
type stateDocument struct {
	model.VacancyReport
	LastCheck json.RawMessage `json:"last_check"`
}

// Save writes report with last_check set to now. The file is written to a
// sibling temp file first and renamed into place.
func (s *FileStore) Save(_ context.Context, report model.VacancyReport, now time.Time) error {
	data, err := json.MarshalIndent(model.PersistedState{VacancyReport: report, LastCheck: now}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode state: %w", model.ErrStateIO, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", model.ErrStateIO, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", model.ErrStateIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", model.ErrStateIO, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", model.ErrStateIO, s.path, err)
	}
	return nil
}
