// Package migrations holds the schema for the sqlite state backend.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

// Apply brings db up to the latest vacancy_state schema and returns the
// resulting schema version.
func Apply(ctx context.Context, db *sql.DB) (int64, error) {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, schema)
	if err != nil {
		return 0, fmt.Errorf("init schema migrations: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return 0, fmt.Errorf("apply schema migrations: %w", err)
	}
	return p.GetDBVersion(ctx)
}
