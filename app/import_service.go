package app

import (
	"context"
	"io"
	"time"

	"zencat/adapters/excel"
	"zencat/domain/bulkimport"
	"zencat/internal/errors"
	"zencat/models"
	"zencat/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ImportService runs the whole bulk-import flow: precondition gate, file
// parse, reconciliation pipeline, and - only when every row passed - the
// bulk-create call. One invocation is fully isolated; nothing is shared
// between imports.
type ImportService struct {
	reader      *excel.Reader
	sessions    ports.SessionRepository
	communities ports.CommunityRepository
	locals      ports.LocalRepository
	creator     ports.BulkCreator
	location    *time.Location
	maxRows     int
	log         zerolog.Logger
}

// NewImportService wires the import flow.
func NewImportService(
	reader *excel.Reader,
	sessions ports.SessionRepository,
	communities ports.CommunityRepository,
	locals ports.LocalRepository,
	creator ports.BulkCreator,
	location *time.Location,
	maxRows int,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{
		reader:      reader,
		sessions:    sessions,
		communities: communities,
		locals:      locals,
		creator:     creator,
		location:    location,
		maxRows:     maxRows,
		log:         log,
	}
}

// SessionImportRequest is one uploaded session batch. Professional, venue
// and link apply to every row; the spreadsheet carries the per-row schedule.
type SessionImportRequest struct {
	File           io.Reader
	Filename       string
	ProfessionalID string
	LocalID        string
	IsVirtual      bool
	SessionLink    string
}

// CommunityImportRequest is one uploaded community batch.
type CommunityImportRequest struct {
	File     io.Reader
	Filename string
}

// Outcome reports one import. Accepted means every row was forwarded to the
// creation API; otherwise Diagnostics explains every problem and nothing was
// submitted.
type Outcome struct {
	ImportID    string                  `json:"import_id"`
	Accepted    bool                    `json:"accepted"`
	Created     int                     `json:"created"`
	Diagnostics []bulkimport.Diagnostic `json:"diagnostics,omitempty"`
	Message     string                  `json:"message,omitempty"`
	Summary     *BatchSummary           `json:"summary,omitempty"`
}

func rejected(importID string, d bulkimport.Diagnostics) Outcome {
	return Outcome{
		ImportID:    importID,
		Diagnostics: d.Items(),
		Message:     d.Join(),
	}
}

// ImportSessions validates and submits a session batch.
func (s *ImportService) ImportSessions(ctx context.Context, req SessionImportRequest) (Outcome, error) {
	importID := uuid.NewString()
	log := s.log.With().Str("import_id", importID).Str("entity", bulkimport.EntitySessions).Logger()

	// The gate runs before any parsing happens.
	if msg := sessionPrecondition(req); msg != "" {
		var d bulkimport.Diagnostics
		d.Append(bulkimport.Diagnostic{Category: bulkimport.CategoryPrecondition, Message: msg})
		return rejected(importID, d), nil
	}

	table, err := s.parse(req.File, req.Filename)
	if err != nil {
		return Outcome{ImportID: importID}, err
	}

	// Existing state is fetched concurrently; both inputs are read-only.
	var (
		existing []bulkimport.ExistingInterval
		ceiling  float64
	)
	if !req.IsVirtual {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			existing, err = s.sessions.ExistingIntervals(gctx, req.LocalID)
			return err
		})
		g.Go(func() error {
			local, err := s.locals.Get(gctx, req.LocalID)
			if err != nil {
				return err
			}
			ceiling = float64(local.Capacity)
			return nil
		})
		if err := g.Wait(); err != nil {
			return Outcome{ImportID: importID}, errors.Wrap(err, "failed to load existing data")
		}
	}

	result, err := bulkimport.Run(table.Headers, table.Rows, models.SessionColumns, bulkimport.Options{
		Entity:            bulkimport.EntitySessions,
		ExistingIntervals: existing,
		CapacityCeiling:   ceiling,
		InPerson:          !req.IsVirtual,
		Location:          s.location,
		Trace:             log,
	})
	if err != nil {
		return Outcome{ImportID: importID}, err
	}
	if !result.Accepted() {
		log.Info().Int("diagnostics", len(result.Diagnostics.Items())).Msg("session import rejected")
		return rejected(importID, result.Diagnostics), nil
	}

	sessions := make([]models.Session, len(result.Rows))
	for i, row := range result.Rows {
		session := models.SessionFromRow(row)
		session.ProfessionalID = req.ProfessionalID
		session.LocalID = req.LocalID
		session.SessionLink = req.SessionLink
		sessions[i] = session
	}

	if err := s.creator.CreateSessions(ctx, sessions); err != nil {
		return Outcome{ImportID: importID}, err
	}

	summary := SummarizeSessions(sessions)
	log.Info().Int("created", len(sessions)).Msg("session import accepted")
	return Outcome{ImportID: importID, Accepted: true, Created: len(sessions), Summary: &summary}, nil
}

// ImportCommunities validates and submits a community batch.
func (s *ImportService) ImportCommunities(ctx context.Context, req CommunityImportRequest) (Outcome, error) {
	importID := uuid.NewString()
	log := s.log.With().Str("import_id", importID).Str("entity", bulkimport.EntityCommunities).Logger()

	table, err := s.parse(req.File, req.Filename)
	if err != nil {
		return Outcome{ImportID: importID}, err
	}

	existingNames, err := s.communities.Names(ctx)
	if err != nil {
		return Outcome{ImportID: importID}, errors.Wrap(err, "failed to load existing community names")
	}

	result, err := bulkimport.Run(table.Headers, table.Rows, models.CommunityColumns, bulkimport.Options{
		Entity:              bulkimport.EntityCommunities,
		ValidateUniqueNames: true,
		ExistingNames:       existingNames,
		Trace:               log,
	})
	if err != nil {
		return Outcome{ImportID: importID}, err
	}
	if !result.Accepted() {
		log.Info().Int("diagnostics", len(result.Diagnostics.Items())).Msg("community import rejected")
		return rejected(importID, result.Diagnostics), nil
	}

	communities := make([]models.Community, len(result.Rows))
	for i, row := range result.Rows {
		communities[i] = models.CommunityFromRow(row)
	}

	if err := s.creator.CreateCommunities(ctx, communities); err != nil {
		return Outcome{ImportID: importID}, err
	}

	log.Info().Int("created", len(communities)).Msg("community import accepted")
	return Outcome{ImportID: importID, Accepted: true, Created: len(communities)}, nil
}

func (s *ImportService) parse(file io.Reader, filename string) (*excel.Table, error) {
	table, err := s.reader.Parse(file, filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse uploaded file")
	}
	if s.maxRows > 0 && len(table.Rows) > s.maxRows {
		return nil, errors.InvalidInput("file exceeds the row limit for a single import")
	}
	return table, nil
}

func sessionPrecondition(req SessionImportRequest) string {
	if req.ProfessionalID == "" {
		return "a professional must be selected before importing sessions"
	}
	if !req.IsVirtual && req.LocalID == "" {
		return "a venue must be selected for in-person sessions"
	}
	if req.IsVirtual && req.SessionLink == "" {
		return "a session link is required for virtual sessions"
	}
	return ""
}
