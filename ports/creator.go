package ports

import (
	"context"

	"zencat/models"
)

// BulkCreator forwards a fully validated batch to the remote creation API.
// It is only called when validation produced zero diagnostics; its errors are
// surfaced to the caller verbatim and never merged with validation output.
type BulkCreator interface {
	CreateSessions(ctx context.Context, sessions []models.Session) error
	CreateCommunities(ctx context.Context, communities []models.Community) error
}
