package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
)

var mediaSeq int

// CreateTestMedia persists a media title with the given score and votes
// and returns it. A nil score or votes stays NULL in the store.
func CreateTestMedia(t *testing.T, db *gorm.DB, title string, score *float64, votes *int) *repository.Media {
	t.Helper()

	mediaSeq++
	media := &repository.Media{
		ID:          fmt.Sprintf("tm%07d", mediaSeq),
		Title:       title,
		Type:        repository.MediaTypeMovie,
		ReleaseYear: 2000,
		Runtime:     100,
		IMDBScore:   score,
		IMDBVotes:   votes,
	}
	require.NoError(t, db.Create(media).Error)
	return media
}

// CreateTestActor persists an actor.
func CreateTestActor(t *testing.T, db *gorm.DB, name string) *repository.Actor {
	t.Helper()

	actor := &repository.Actor{Name: name}
	require.NoError(t, db.Create(actor).Error)
	return actor
}

// CreateTestDirector persists a director.
func CreateTestDirector(t *testing.T, db *gorm.DB, name string) *repository.Director {
	t.Helper()

	director := &repository.Director{Name: name}
	require.NoError(t, db.Create(director).Error)
	return director
}

// CreateTestGenre persists a genre.
func CreateTestGenre(t *testing.T, db *gorm.DB, genreType string) *repository.Genre {
	t.Helper()

	genre := &repository.Genre{GenreType: genreType}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

// LinkActor associates an actor with a media title.
func LinkActor(t *testing.T, db *gorm.DB, media *repository.Media, actor *repository.Actor) {
	t.Helper()
	require.NoError(t, db.Model(media).Association("Actors").Append(actor))
}

// LinkDirector associates a director with a media title.
func LinkDirector(t *testing.T, db *gorm.DB, media *repository.Media, director *repository.Director) {
	t.Helper()
	require.NoError(t, db.Model(media).Association("Directors").Append(director))
}

// LinkGenre associates a genre with a media title.
func LinkGenre(t *testing.T, db *gorm.DB, media *repository.Media, genre *repository.Genre) {
	t.Helper()
	require.NoError(t, db.Model(media).Association("Genres").Append(genre))
}

// Float returns a pointer to v for nullable fixture fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v for nullable fixture fields.
func Int(v int) *int { return &v }
