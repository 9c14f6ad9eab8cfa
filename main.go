package main

import (
	"context"

	"zencat/adapters/db/postgres"
	"zencat/adapters/excel"
	"zencat/adapters/zencat"
	"zencat/app"
	"zencat/internal/config"
	"zencat/internal/logging"
	"zencat/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file before logging is configured.
	_ = godotenv.Load()
	log := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	gin.SetMode(cfg.Server.GinMode)

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	creator := zencat.NewClient(cfg.ZenCat.BaseURL, cfg.ZenCat.Timeout, log)
	imports := app.NewImportService(
		excel.NewReader(),
		postgres.NewSessionRepository(db),
		postgres.NewCommunityRepository(db),
		postgres.NewLocalRepository(db),
		creator,
		cfg.Location(),
		cfg.Import.MaxRows,
		log,
	)

	server := ui.NewServer(imports, db, log)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
