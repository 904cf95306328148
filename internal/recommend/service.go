package recommend

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// Options tunes the recommendation engine. The defaults reproduce the
// documented contract: a ±0.5 closed score window and at most 10 results.
type Options struct {
	// ScoreWindow is the half-width of the closed score interval used by
	// genre/target-score queries.
	ScoreWindow float64
	// Limit caps every result list. The cap is applied at the query
	// layer, not after fetching.
	Limit int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ScoreWindow: 0.5,
		Limit:       10,
	}
}

// Recommendation is a media title projected for a recommendation
// response. Score and votes are always present as floats; a NULL stored
// value projects to 0.
type Recommendation struct {
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	IMDBScore   float64 `json:"imdb_score"`
	IMDBVotes   float64 `json:"imdb_votes"`
}

// Service answers the three recommendation query shapes against the
// populated entity store. It is stateless and read-only.
type Service struct {
	db     *gorm.DB
	opts   Options
	logger interfaces.Logger
}

// NewService creates a new recommendation service.
func NewService(db *gorm.DB, opts Options, logger interfaces.Logger) *Service {
	if opts.ScoreWindow <= 0 {
		opts.ScoreWindow = DefaultOptions().ScoreWindow
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}
	return &Service{
		db:     db,
		opts:   opts,
		logger: logger,
	}
}

// resultRow is the scan target for recommendation queries. Score and
// votes stay nullable here so a stored NULL survives until projection.
type resultRow struct {
	Title       string   `gorm:"column:title"`
	ReleaseYear int      `gorm:"column:release_year"`
	IMDBScore   *float64 `gorm:"column:imdb_score"`
	IMDBVotes   *int     `gorm:"column:imdb_votes"`
}

// ByGenreTargetScore returns up to Limit media in the given genre whose
// score lies within the closed interval [target-window, target+window],
// ordered by vote count descending.
func (s *Service) ByGenreTargetScore(ctx context.Context, genreType string, targetScore float64) ([]Recommendation, error) {
	minScore := targetScore - s.opts.ScoreWindow
	maxScore := targetScore + s.opts.ScoreWindow

	var rows []resultRow
	err := s.db.WithContext(ctx).
		Table("media").
		Select("media.title, media.release_year, media.imdb_score, media.imdb_votes").
		Joins("JOIN media_genre ON media_genre.media_id = media.id").
		Joins("JOIN genre ON genre.id = media_genre.genre_id").
		Where("genre.genre_type = ?", genreType).
		Where("media.imdb_score >= ?", minScore).
		Where("media.imdb_score <= ?", maxScore).
		Order("media.imdb_votes DESC NULLS LAST").
		Limit(s.opts.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("genre recommendation query failed: %w", err)
	}

	s.logger.Debug("Genre recommendation query",
		interfaces.String("genre_type", genreType),
		interfaces.Float64("target_imdb_score", targetScore),
		interfaces.Int("results", len(rows)))

	return project(rows), nil
}

// ByActor returns up to Limit media linked to the actor with exactly the
// given stored name, ordered by score then votes, both descending.
func (s *Service) ByActor(ctx context.Context, name string) ([]Recommendation, error) {
	rows, err := s.byPerson(ctx, "media_actor", "actor", name)
	if err != nil {
		return nil, fmt.Errorf("actor recommendation query failed: %w", err)
	}

	s.logger.Debug("Actor recommendation query",
		interfaces.String("name", name),
		interfaces.Int("results", len(rows)))

	return project(rows), nil
}

// ByDirector returns up to Limit media linked to the director with
// exactly the given stored name, ordered by score then votes descending.
func (s *Service) ByDirector(ctx context.Context, name string) ([]Recommendation, error) {
	rows, err := s.byPerson(ctx, "media_director", "director", name)
	if err != nil {
		return nil, fmt.Errorf("director recommendation query failed: %w", err)
	}

	s.logger.Debug("Director recommendation query",
		interfaces.String("name", name),
		interfaces.Int("results", len(rows)))

	return project(rows), nil
}

// byPerson is the shared shape of the actor and director strategies:
// join through the association table, match the stored name exactly.
// NULLS LAST keeps unrated titles at the tail; postgres would otherwise
// put NULLs first under DESC.
func (s *Service) byPerson(ctx context.Context, joinTable, entityTable, name string) ([]resultRow, error) {
	var rows []resultRow
	err := s.db.WithContext(ctx).
		Table("media").
		Select("media.title, media.release_year, media.imdb_score, media.imdb_votes").
		Joins(fmt.Sprintf("JOIN %s ON %s.media_id = media.id", joinTable, joinTable)).
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.%s_id", entityTable, entityTable, joinTable, entityTable)).
		Where(entityTable+".name = ?", name).
		Order("media.imdb_score DESC NULLS LAST").
		Order("media.imdb_votes DESC NULLS LAST").
		Limit(s.opts.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// project coerces nullable stored values into the total response shape.
func project(rows []resultRow) []Recommendation {
	recs := make([]Recommendation, 0, len(rows))
	for _, row := range rows {
		rec := Recommendation{
			Title:       row.Title,
			ReleaseYear: row.ReleaseYear,
		}
		if row.IMDBScore != nil {
			rec.IMDBScore = *row.IMDBScore
		}
		if row.IMDBVotes != nil {
			rec.IMDBVotes = float64(*row.IMDBVotes)
		}
		recs = append(recs, rec)
	}
	return recs
}
