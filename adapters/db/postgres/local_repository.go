package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"zencat/internal/errors"
	"zencat/models"
	"zencat/ports"

	"github.com/jmoiron/sqlx"
)

// LocalRepository resolves venues and their capacity ceilings.
type LocalRepository struct {
	db *sqlx.DB
}

// NewLocalRepository creates the repository.
func NewLocalRepository(db *sqlx.DB) *LocalRepository {
	return &LocalRepository{db: db}
}

// Get returns one venue by id.
func (r *LocalRepository) Get(ctx context.Context, id string) (models.Local, error) {
	var local models.Local
	err := r.db.GetContext(ctx, &local,
		`SELECT id, name, address, capacity FROM locals WHERE id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Local{}, errors.NotFound("local")
	}
	if err != nil {
		return models.Local{}, errors.Wrap(err, "failed to load local")
	}
	return local, nil
}

var _ ports.LocalRepository = (*LocalRepository)(nil)
