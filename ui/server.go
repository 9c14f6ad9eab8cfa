package ui

import (
	"context"
	"embed"

	"zencat/app"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

//go:embed guide.md
var embeddedFiles embed.FS

// Importer is the slice of app.ImportService the handlers need.
type Importer interface {
	ImportSessions(ctx context.Context, req app.SessionImportRequest) (app.Outcome, error)
	ImportCommunities(ctx context.Context, req app.CommunityImportRequest) (app.Outcome, error)
}

// Server exposes the bulk-import endpoints of the admin dashboard backend.
type Server struct {
	router  *gin.Engine
	imports Importer
	db      *sqlx.DB
	log     zerolog.Logger
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(imports Importer, db *sqlx.DB, log zerolog.Logger) *Server {
	s := &Server{
		router:  gin.Default(),
		imports: imports,
		db:      db,
		log:     log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/guide", s.handleGuide)

	api := s.router.Group("/api")
	api.POST("/imports/sessions", s.handleImportSessions)
	api.POST("/imports/communities", s.handleImportCommunities)
	api.GET("/imports/template/:entity", s.handleTemplate)
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("starting import server")
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine { return s.router }
