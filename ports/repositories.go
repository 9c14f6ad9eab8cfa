package ports

import (
	"context"

	"zencat/domain/bulkimport"
	"zencat/models"
)

// SessionRepository reads already-committed sessions for conflict detection.
type SessionRepository interface {
	// ExistingIntervals returns the committed intervals for a venue. The
	// result is read-only input to the conflict detector.
	ExistingIntervals(ctx context.Context, localID string) ([]bulkimport.ExistingInterval, error)
}

// CommunityRepository reads committed community names for uniqueness checks.
type CommunityRepository interface {
	Names(ctx context.Context) ([]string, error)
}

// LocalRepository resolves venues and their capacity ceilings.
type LocalRepository interface {
	Get(ctx context.Context, id string) (models.Local, error)
}
