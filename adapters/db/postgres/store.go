package postgres

import (
	"context"

	"zencat/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a PostgreSQL connection.
func Connect(url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

// EnsureSchema creates the read-model tables this service consults. The
// tables are populated by the platform's own sync jobs; this service only
// reads them.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS locals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			capacity INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date DATE NOT NULL,
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 0,
			professional_id TEXT NOT NULL DEFAULT '',
			local_id TEXT REFERENCES locals(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_local_date ON sessions (local_id, date)`,
		`CREATE TABLE IF NOT EXISTS communities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			purpose TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "schema bootstrap failed")
		}
	}
	return nil
}
