package postgres

import (
	"context"

	"zencat/internal/errors"
	"zencat/ports"

	"github.com/jmoiron/sqlx"
)

// CommunityRepository reads committed community names for uniqueness checks.
type CommunityRepository struct {
	db *sqlx.DB
}

// NewCommunityRepository creates the repository.
func NewCommunityRepository(db *sqlx.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Names returns every committed community name.
func (r *CommunityRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, `SELECT name FROM communities ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "failed to load community names")
	}
	return names, nil
}

var _ ports.CommunityRepository = (*CommunityRepository)(nil)
