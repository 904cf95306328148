package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/domain"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/service"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/config"
	natsevents "github.com/VytautasPliadis/Recommendation-Engine/internal/events/nats"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/ingest"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/recommend"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/server"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/database"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/events"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New()

	log.Info("Recommendation service starting",
		interfaces.String("environment", cfg.Server.Environment))

	// Connect to database
	log.Info("Connecting to database...")
	db, err := database.NewGormDB(cfg.Database.ToPostgresConfig(cfg.Server.Environment))
	if err != nil {
		log.Fatal("Failed to connect to database", interfaces.Error(err))
	}

	// Run migrations
	log.Info("Running database migrations...")
	if err := database.MigrateDatabase(db, repository.AllModels()...); err != nil {
		log.Fatal("Failed to run migrations", interfaces.Error(err))
	}

	// Initialize repository
	repo := repository.NewGormRepository(db)

	// Initialize event bus
	eventBus := events.NewInMemoryEventBus(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", interfaces.Error(err))
	}

	// Forward domain events to JetStream when NATS is configured
	var publisher *natsevents.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = natsevents.NewPublisher(cfg.NATS, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS", interfaces.Error(err))
		}
		if err := publisher.SubscribeAll(eventBus,
			domain.EventActorCreated,
			domain.EventDirectorCreated,
			domain.EventMediaCreated,
			domain.EventAssociationCreated,
			ingest.EventStepCompleted,
			ingest.EventRunCompleted,
		); err != nil {
			log.Fatal("Failed to subscribe NATS forwarder", interfaces.Error(err))
		}
	}

	// Initialize services
	catalogService := service.NewCatalogService(repo, eventBus, log)
	recommender := recommend.NewService(db, recommend.Options{
		ScoreWindow: cfg.Recommend.ScoreWindow,
		Limit:       cfg.Recommend.ResultLimit,
	}, log)

	router := server.NewRouter(server.RouterConfig{
		DB:          db,
		Catalog:     catalogService,
		Recommender: recommender,
		Logger:      log,
		Environment: cfg.Server.Environment,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", interfaces.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to serve HTTP", interfaces.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTime)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", interfaces.Error(err))
	}

	eventBus.Stop()

	if publisher != nil {
		publisher.Close()
	}

	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}

	log.Info("Recommendation service stopped")
}
