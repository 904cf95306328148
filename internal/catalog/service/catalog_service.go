package service

import (
	"context"
	"strings"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/domain"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/errors"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// CatalogService handles catalog entity business logic: creation with
// duplicate detection, lookups, and append-only association growth.
type CatalogService struct {
	repo     repository.Repository
	eventBus interfaces.EventBus
	logger   interfaces.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	repo repository.Repository,
	eventBus interfaces.EventBus,
	logger interfaces.Logger,
) *CatalogService {
	return &CatalogService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateActor creates a new actor. The name is trimmed before storage;
// an existing name is a conflict.
func (s *CatalogService) CreateActor(ctx context.Context, name string) (*repository.Actor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("actor name is required")
	}

	if existing, _ := s.repo.GetActorByName(ctx, name); existing != nil {
		return nil, errors.Conflict("actor is in the database already")
	}

	actor := &repository.Actor{Name: name}
	if err := s.repo.CreateActor(ctx, actor); err != nil {
		s.logger.Error("Failed to create actor", interfaces.Error(err))
		return nil, err
	}

	s.eventBus.PublishAsync(ctx, domain.NewActorCreatedEvent(actor))

	s.logger.Info("Actor created",
		interfaces.Int("id", actor.ID),
		interfaces.String("name", actor.Name))

	return actor, nil
}

// GetActor retrieves an actor by exact name.
func (s *CatalogService) GetActor(ctx context.Context, name string) (*repository.Actor, error) {
	return s.repo.GetActorByName(ctx, name)
}

// CreateDirector creates a new director. The name is trimmed before
// storage; an existing name is a conflict.
func (s *CatalogService) CreateDirector(ctx context.Context, name string) (*repository.Director, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("director name is required")
	}

	if existing, _ := s.repo.GetDirectorByName(ctx, name); existing != nil {
		return nil, errors.Conflict("director is in the database already")
	}

	director := &repository.Director{Name: name}
	if err := s.repo.CreateDirector(ctx, director); err != nil {
		s.logger.Error("Failed to create director", interfaces.Error(err))
		return nil, err
	}

	s.eventBus.PublishAsync(ctx, domain.NewDirectorCreatedEvent(director))

	s.logger.Info("Director created",
		interfaces.Int("id", director.ID),
		interfaces.String("name", director.Name))

	return director, nil
}

// GetDirector retrieves a director by exact name.
func (s *CatalogService) GetDirector(ctx context.Context, name string) (*repository.Director, error) {
	return s.repo.GetDirectorByName(ctx, name)
}

// CreateMedia creates a new media title. An existing title is a conflict.
func (s *CatalogService) CreateMedia(ctx context.Context, media *repository.Media) (*repository.Media, error) {
	if media.ID == "" || media.Title == "" {
		return nil, errors.BadRequest("media id and title are required")
	}

	if existing, _ := s.repo.GetMediaByTitle(ctx, media.Title); existing != nil {
		return nil, errors.Conflict("media is in the database already")
	}

	if err := s.repo.CreateMedia(ctx, media); err != nil {
		s.logger.Error("Failed to create media", interfaces.Error(err))
		return nil, err
	}

	s.eventBus.PublishAsync(ctx, domain.NewMediaCreatedEvent(media))

	s.logger.Info("Media created",
		interfaces.String("id", media.ID),
		interfaces.String("title", media.Title))

	return media, nil
}

// GetMedia retrieves a media title by its unique title.
func (s *CatalogService) GetMedia(ctx context.Context, title string) (*repository.Media, error) {
	return s.repo.GetMediaByTitle(ctx, title)
}

// AssociateActorWithMedia links an actor to a media title. The link is
// append-only and idempotent; either side missing is a not-found error.
func (s *CatalogService) AssociateActorWithMedia(ctx context.Context, actorID int, mediaID string) error {
	media, err := s.repo.GetMediaByID(ctx, mediaID)
	if err != nil {
		return err
	}

	actor, err := s.repo.GetActorByID(ctx, actorID)
	if err != nil {
		return err
	}

	if err := s.repo.AppendActor(ctx, media, actor); err != nil {
		s.logger.Error("Failed to associate actor with media", interfaces.Error(err))
		return err
	}

	s.eventBus.PublishAsync(ctx, domain.NewAssociationCreatedEvent("actor", media.ID, actor.ID))

	return nil
}

// AssociateDirectorWithMedia links a director to a media title. The link
// is append-only and idempotent; either side missing is a not-found error.
func (s *CatalogService) AssociateDirectorWithMedia(ctx context.Context, directorID int, mediaID string) error {
	media, err := s.repo.GetMediaByID(ctx, mediaID)
	if err != nil {
		return err
	}

	director, err := s.repo.GetDirectorByID(ctx, directorID)
	if err != nil {
		return err
	}

	if err := s.repo.AppendDirector(ctx, media, director); err != nil {
		s.logger.Error("Failed to associate director with media", interfaces.Error(err))
		return err
	}

	s.eventBus.PublishAsync(ctx, domain.NewAssociationCreatedEvent("director", media.ID, director.ID))

	return nil
}
