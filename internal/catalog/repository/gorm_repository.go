package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/VytautasPliadis/Recommendation-Engine/pkg/errors"
	pkgrepo "github.com/VytautasPliadis/Recommendation-Engine/pkg/repository"
)

// GormRepository implements the Repository interface using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// DB exposes the underlying gorm handle for the ad-hoc query console.
func (r *GormRepository) DB() *gorm.DB {
	return r.db
}

// CreateActor creates a new actor.
func (r *GormRepository) CreateActor(ctx context.Context, actor *Actor) error {
	return pkgrepo.Create(ctx, r.db, actor)
}

// GetActorByName retrieves an actor by exact name.
func (r *GormRepository) GetActorByName(ctx context.Context, name string) (*Actor, error) {
	return pkgrepo.FindOneBy[Actor](ctx, r.db, "name = ?", name)
}

// GetActorByID retrieves an actor by ID.
func (r *GormRepository) GetActorByID(ctx context.Context, id int) (*Actor, error) {
	return pkgrepo.FindByID[Actor](ctx, r.db, id)
}

// CreateDirector creates a new director.
func (r *GormRepository) CreateDirector(ctx context.Context, director *Director) error {
	return pkgrepo.Create(ctx, r.db, director)
}

// GetDirectorByName retrieves a director by exact name.
func (r *GormRepository) GetDirectorByName(ctx context.Context, name string) (*Director, error) {
	return pkgrepo.FindOneBy[Director](ctx, r.db, "name = ?", name)
}

// GetDirectorByID retrieves a director by ID.
func (r *GormRepository) GetDirectorByID(ctx context.Context, id int) (*Director, error) {
	return pkgrepo.FindByID[Director](ctx, r.db, id)
}

// CreateMedia creates a new media title.
func (r *GormRepository) CreateMedia(ctx context.Context, media *Media) error {
	return pkgrepo.Create(ctx, r.db, media)
}

// GetMediaByID retrieves a media title by its catalog ID.
func (r *GormRepository) GetMediaByID(ctx context.Context, id string) (*Media, error) {
	return pkgrepo.FindByID[Media](ctx, r.db, id)
}

// GetMediaByTitle retrieves a media title by its unique title.
func (r *GormRepository) GetMediaByTitle(ctx context.Context, title string) (*Media, error) {
	return pkgrepo.FindOneBy[Media](ctx, r.db, "title = ?", title)
}

// AppendActor links an actor to a media title. Existing links are left
// untouched; the join table's composite key makes the append idempotent.
func (r *GormRepository) AppendActor(ctx context.Context, media *Media, actor *Actor) error {
	if err := r.db.WithContext(ctx).Model(media).Association("Actors").Append(actor); err != nil {
		if pkgerrors.IsDuplicateError(err) {
			return nil
		}
		return fmt.Errorf("failed to link actor %d to media %s: %w", actor.ID, media.ID, err)
	}
	return nil
}

// AppendDirector links a director to a media title, idempotently.
func (r *GormRepository) AppendDirector(ctx context.Context, media *Media, director *Director) error {
	if err := r.db.WithContext(ctx).Model(media).Association("Directors").Append(director); err != nil {
		if pkgerrors.IsDuplicateError(err) {
			return nil
		}
		return fmt.Errorf("failed to link director %d to media %s: %w", director.ID, media.ID, err)
	}
	return nil
}
