package domain

import (
	"strconv"
	"time"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
)

// Event type names for the catalog aggregate.
const (
	EventActorCreated       = "catalog.actor.created"
	EventDirectorCreated    = "catalog.director.created"
	EventMediaCreated       = "catalog.media.created"
	EventAssociationCreated = "catalog.association.created"
)

// ActorCreatedEvent is published when an actor is created
type ActorCreatedEvent struct {
	Actor     *repository.Actor `json:"actor"`
	timestamp int64
}

func NewActorCreatedEvent(actor *repository.Actor) *ActorCreatedEvent {
	return &ActorCreatedEvent{
		Actor:     actor,
		timestamp: time.Now().Unix(),
	}
}

func (e *ActorCreatedEvent) EventType() string {
	return EventActorCreated
}

func (e *ActorCreatedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *ActorCreatedEvent) AggregateID() string {
	return strconv.Itoa(e.Actor.ID)
}

// DirectorCreatedEvent is published when a director is created
type DirectorCreatedEvent struct {
	Director  *repository.Director `json:"director"`
	timestamp int64
}

func NewDirectorCreatedEvent(director *repository.Director) *DirectorCreatedEvent {
	return &DirectorCreatedEvent{
		Director:  director,
		timestamp: time.Now().Unix(),
	}
}

func (e *DirectorCreatedEvent) EventType() string {
	return EventDirectorCreated
}

func (e *DirectorCreatedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *DirectorCreatedEvent) AggregateID() string {
	return strconv.Itoa(e.Director.ID)
}

// MediaCreatedEvent is published when a media title is created
type MediaCreatedEvent struct {
	Media     *repository.Media `json:"media"`
	timestamp int64
}

func NewMediaCreatedEvent(media *repository.Media) *MediaCreatedEvent {
	return &MediaCreatedEvent{
		Media:     media,
		timestamp: time.Now().Unix(),
	}
}

func (e *MediaCreatedEvent) EventType() string {
	return EventMediaCreated
}

func (e *MediaCreatedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *MediaCreatedEvent) AggregateID() string {
	return e.Media.ID
}

// AssociationCreatedEvent is published when an entity is linked to a
// media title through one of the association sets.
type AssociationCreatedEvent struct {
	Kind      string `json:"kind"` // actor or director
	MediaID   string `json:"media_id"`
	EntityID  int    `json:"entity_id"`
	timestamp int64
}

func NewAssociationCreatedEvent(kind, mediaID string, entityID int) *AssociationCreatedEvent {
	return &AssociationCreatedEvent{
		Kind:      kind,
		MediaID:   mediaID,
		EntityID:  entityID,
		timestamp: time.Now().Unix(),
	}
}

func (e *AssociationCreatedEvent) EventType() string {
	return EventAssociationCreated
}

func (e *AssociationCreatedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *AssociationCreatedEvent) AggregateID() string {
	return e.MediaID
}
