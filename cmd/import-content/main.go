// Package main provides the catalog importer that loads move and species
// YAML definitions and upserts them into PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	sourceDir := flag.String("source", "content", "path to catalog YAML directory")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	loadStart := time.Now()
	reg, err := content.LoadDirectory(*sourceDir)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("moves", len(reg.Moves())),
		zap.Int("species", len(reg.AllSpecies())),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	repo := postgres.NewCatalogRepository(pool.DB())

	for _, m := range reg.Moves() {
		if err := repo.UpsertMove(ctx, m); err != nil {
			logger.Fatal("upserting move", zap.String("id", m.ID), zap.Error(err))
		}
	}
	for _, s := range reg.AllSpecies() {
		if err := repo.UpsertSpecies(ctx, s); err != nil {
			logger.Fatal("upserting species", zap.String("id", s.ID), zap.Error(err))
		}
	}

	logger.Info("import complete",
		zap.Int("moves", len(reg.Moves())),
		zap.Int("species", len(reg.AllSpecies())),
		zap.Duration("elapsed", time.Since(start)),
	)
}
