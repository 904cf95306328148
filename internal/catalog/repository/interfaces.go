package repository

import (
	"context"
)

// Repository defines data access for catalog entities and their
// associations. Lookup misses return a typed NotFound error; duplicate
// unique keys return a typed Conflict error.
type Repository interface {
	CreateActor(ctx context.Context, actor *Actor) error
	GetActorByName(ctx context.Context, name string) (*Actor, error)
	GetActorByID(ctx context.Context, id int) (*Actor, error)

	CreateDirector(ctx context.Context, director *Director) error
	GetDirectorByName(ctx context.Context, name string) (*Director, error)
	GetDirectorByID(ctx context.Context, id int) (*Director, error)

	CreateMedia(ctx context.Context, media *Media) error
	GetMediaByID(ctx context.Context, id string) (*Media, error)
	GetMediaByTitle(ctx context.Context, title string) (*Media, error)

	// AppendActor links an actor to a media title. The operation is
	// append-only and idempotent: an existing link is a no-op.
	AppendActor(ctx context.Context, media *Media, actor *Actor) error
	AppendDirector(ctx context.Context, media *Media, director *Director) error
}
