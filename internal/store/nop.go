package store

import (
	"context"
	"time"

	"github.com/amishk599/roomwatch/internal/model"
)

// NopStore is a no-op store used in dry-run mode. It never remembers a
// report, so every structured run looks like a first run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Load(_ context.Context) (*model.PersistedState, error) { return nil, nil }
func (s *NopStore) Save(_ context.Context, _ model.VacancyReport, _ time.Time) error {
	return nil
}
