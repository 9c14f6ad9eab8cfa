package postgres

import (
	"context"
	"time"

	"zencat/domain/bulkimport"
	"zencat/internal/errors"
	"zencat/ports"

	"github.com/jmoiron/sqlx"
)

// SessionRepository reads committed sessions for conflict detection.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionIntervalRow struct {
	Date    time.Time `db:"date"`
	StartAt time.Time `db:"start_at"`
	EndAt   time.Time `db:"end_at"`
}

// ExistingIntervals returns every committed interval for a venue.
func (r *SessionRepository) ExistingIntervals(ctx context.Context, localID string) ([]bulkimport.ExistingInterval, error) {
	var rows []sessionIntervalRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT date, start_at, end_at FROM sessions WHERE local_id = $1 ORDER BY start_at`, localID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load existing sessions")
	}

	intervals := make([]bulkimport.ExistingInterval, len(rows))
	for i, row := range rows {
		intervals[i] = bulkimport.ExistingInterval{
			Date:  row.Date.Format("2006-01-02"),
			Start: row.StartAt,
			End:   row.EndAt,
		}
	}
	return intervals, nil
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
