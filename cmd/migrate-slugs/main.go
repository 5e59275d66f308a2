package main

import (
	"context"
	"flag"

	"metanoia_app_go/config"
	"metanoia_app_go/db"
	"metanoia_app_go/logger"
	"metanoia_app_go/models"
	"metanoia_app_go/services"

	zlog "github.com/rs/zerolog/log"
)

// migrate-slugs rewrites landing page slugs that are not in canonical form,
// e.g. rows imported from the old site.
func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Environment)

	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.LandingPage{}); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to run migrations")
	}

	zlog.Info().Msg("Checking landing page slugs...")
	fixes, err := services.NewLandingPageStore(db.DB).RepairSlugs(context.Background())
	for i, fix := range fixes {
		zlog.Info().
			Int("n", i+1).
			Str("id", fix.ID).
			Str("name", fix.Name).
			Str("old", fix.Old).
			Str("new", fix.New).
			Msg("Slug rewritten")
	}
	if err != nil {
		zlog.Fatal().Err(err).Msg("Slug migration failed")
	}

	if len(fixes) == 0 {
		zlog.Info().Msg("All slugs are already canonical")
		return
	}
	zlog.Info().Int("fixed", len(fixes)).Msg("Slug migration completed")
}
