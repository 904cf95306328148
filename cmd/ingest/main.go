package main

import (
	"context"
	"flag"
	"os"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/config"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/ingest"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/database"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/events"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/logger"
)

func main() {
	titlesPath := flag.String("titles", "data/titles.csv", "path to the titles CSV file")
	creditsPath := flag.String("credits", "data/credits.csv", "path to the credits CSV file")
	flag.Parse()

	cfg := config.Load()
	log := logger.New()

	log.Info("Ingestion starting",
		interfaces.String("titles", *titlesPath),
		interfaces.String("credits", *creditsPath))

	db, err := database.NewGormDB(cfg.Database.ToPostgresConfig(cfg.Server.Environment))
	if err != nil {
		log.Fatal("Failed to connect to database", interfaces.Error(err))
	}

	if err := database.MigrateDatabase(db, repository.AllModels()...); err != nil {
		log.Fatal("Failed to run migrations", interfaces.Error(err))
	}

	titles, err := os.Open(*titlesPath)
	if err != nil {
		log.Fatal("Failed to open titles file", interfaces.Error(err))
	}
	defer titles.Close()

	credits, err := os.Open(*creditsPath)
	if err != nil {
		log.Fatal("Failed to open credits file", interfaces.Error(err))
	}
	defer credits.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventBus := events.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", interfaces.Error(err))
	}

	pipeline := ingest.NewPipeline(db, eventBus, log)

	stats, err := pipeline.Run(ctx, titles, credits)
	if err != nil {
		log.Fatal("Ingestion failed", interfaces.Error(err))
	}

	eventBus.Stop()

	log.Info("Ingestion completed",
		interfaces.Int("actors", stats.Actors),
		interfaces.Int("directors", stats.Directors),
		interfaces.Int("genres", stats.Genres),
		interfaces.Int("productions", stats.Productions),
		interfaces.Int("media", stats.Media),
		interfaces.Int("duplicate_titles", stats.DuplicateTitles),
		interfaces.Int("actor_links", stats.ActorLinks),
		interfaces.Int("director_links", stats.DirectorLinks),
		interfaces.Int("genre_links", stats.GenreLinks),
		interfaces.Int("production_links", stats.ProductionLinks),
		interfaces.Int("skipped_links", stats.SkippedLinks))
}
