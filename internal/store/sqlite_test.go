package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/amishk599/roomwatch/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteLoadEmptyReturnsNil(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state != nil {
		t.Errorf("expected nil state on empty db, got %+v", state)
	}
}

func TestSQLiteSaveThenLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	if err := s.Save(ctx, sampleReport(), now); err != nil {
		t.Fatalf("Save: %v", err)
	}

	state, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state == nil {
		t.Fatal("expected state after Save")
	}
	if diff := cmp.Diff(sampleReport(), state.VacancyReport); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if !state.LastCheck.Equal(now) {
		t.Errorf("LastCheck = %v, want %v", state.LastCheck, now)
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleReport(), time.Now()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second := model.VacancyReport{Summary: "nothing left", Rooms: []model.Room{}}
	if err := s.Save(ctx, second, time.Now()); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	var rows int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM vacancy_state").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected a single snapshot row, got %d", rows)
	}

	state, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.Summary != "nothing left" {
		t.Errorf("Summary = %q, want the second report", state.Summary)
	}
}

func TestSQLiteReopenKeepsState(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Save(ctx, sampleReport(), time.Now()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	state, err := reopened.Load(ctx)
	if err != nil || state == nil {
		t.Fatalf("Load after reopen: state=%v err=%v", state, err)
	}
}
