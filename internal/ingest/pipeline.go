package ingest

import (
	"context"
	"io"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/errors"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

const insertBatchSize = 500

// Stats summarizes one pipeline run.
type Stats struct {
	Actors          int `json:"actors"`
	Directors       int `json:"directors"`
	Genres          int `json:"genres"`
	Productions     int `json:"productions"`
	Media           int `json:"media"`
	DuplicateTitles int `json:"duplicate_titles"`
	ActorLinks      int `json:"actor_links"`
	DirectorLinks   int `json:"director_links"`
	GenreLinks      int `json:"genre_links"`
	ProductionLinks int `json:"production_links"`
	SkippedLinks    int `json:"skipped_links"`
}

// Pipeline populates the entity store from the raw titles and credits
// sources. It runs strictly sequentially; each step commits its own
// transaction, and a failing step aborts the run without rolling back
// the steps already committed.
type Pipeline struct {
	db          *gorm.DB
	eventBus    interfaces.EventBus
	logger      interfaces.Logger
	corrections Corrections
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(db *gorm.DB, eventBus interfaces.EventBus, logger interfaces.Logger) *Pipeline {
	return &Pipeline{
		db:          db,
		eventBus:    eventBus,
		logger:      logger,
		corrections: DefaultCorrections(),
	}
}

// WithCorrections overrides the raw-to-canonical corrections table.
func (p *Pipeline) WithCorrections(c Corrections) *Pipeline {
	p.corrections = c
	return p
}

// Run executes the full pipeline in dependency order: people, genres
// and countries, media, then the four association sets.
func (p *Pipeline) Run(ctx context.Context, titlesSrc, creditsSrc io.Reader) (*Stats, error) {
	titles, err := ReadTitles(titlesSrc)
	if err != nil {
		return nil, err
	}
	credits, err := ReadCredits(creditsSrc)
	if err != nil {
		return nil, err
	}

	merged := Merge(titles, credits, p.corrections)
	p.logger.Info("Sources merged",
		interfaces.Int("titles", len(titles)),
		interfaces.Int("credits", len(credits)),
		interfaces.Int("merged", len(merged)))

	stats := &Stats{}

	steps := []struct {
		name string
		run  func(context.Context, []TitleRow, []MergedRow, *Stats) (inserted, skipped int, err error)
	}{
		{"actors", p.insertActors},
		{"directors", p.insertDirectors},
		{"genres", p.insertGenres},
		{"productions", p.insertProductions},
		{"media", p.insertMedia},
		{"media-actor links", p.linkActors},
		{"media-director links", p.linkDirectors},
		{"media-genre links", p.linkGenres},
		{"media-production links", p.linkProductions},
	}

	for _, step := range steps {
		inserted, skipped, err := step.run(ctx, titles, merged, stats)
		if err != nil {
			p.logger.Error("Ingestion step failed",
				interfaces.String("step", step.name),
				interfaces.Error(err))
			return nil, errors.Wrap(errors.ErrorTypeInternal, "ingestion step "+step.name+" failed", err)
		}

		p.logger.Info("Ingestion step finished",
			interfaces.String("step", step.name),
			interfaces.Int("inserted", inserted),
			interfaces.Int("skipped", skipped))
		p.eventBus.PublishAsync(ctx, NewStepCompletedEvent(step.name, inserted, skipped))
	}

	p.eventBus.PublishAsync(ctx, NewRunCompletedEvent(stats))
	p.logger.Info("Ingestion completed", interfaces.Any("stats", stats))
	return stats, nil
}

// insertActors inserts one actor per distinct trimmed name in the
// merged credits with the ACTOR role.
func (p *Pipeline) insertActors(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	names := distinctNames(merged, "ACTOR")
	actors := make([]*repository.Actor, 0, len(names))
	for _, name := range names {
		actors = append(actors, &repository.Actor{Name: name})
	}

	if err := createBatch(ctx, p.db, actors); err != nil {
		return 0, 0, err
	}
	stats.Actors = len(actors)
	return len(actors), 0, nil
}

// insertDirectors inserts one director per distinct trimmed name in the
// merged credits with the DIRECTOR role.
func (p *Pipeline) insertDirectors(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	names := distinctNames(merged, "DIRECTOR")
	directors := make([]*repository.Director, 0, len(names))
	for _, name := range names {
		directors = append(directors, &repository.Director{Name: name})
	}

	if err := createBatch(ctx, p.db, directors); err != nil {
		return 0, 0, err
	}
	stats.Directors = len(directors)
	return len(directors), 0, nil
}

// insertGenres inserts one genre per distinct code across all merged
// rows' genre lists.
func (p *Pipeline) insertGenres(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	values, err := distinctListValues(merged, func(r MergedRow) string { return r.Genres }, "")
	if err != nil {
		return 0, 0, err
	}

	genres := make([]*repository.Genre, 0, len(values))
	for _, v := range values {
		genres = append(genres, &repository.Genre{GenreType: v})
	}

	if err := createBatch(ctx, p.db, genres); err != nil {
		return 0, 0, err
	}
	stats.Genres = len(genres)
	return len(genres), 0, nil
}

// insertProductions inserts one production country per distinct code,
// excluding the unknown-country sentinel.
func (p *Pipeline) insertProductions(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	values, err := distinctListValues(merged, func(r MergedRow) string { return r.ProductionCountries }, "XX")
	if err != nil {
		return 0, 0, err
	}

	productions := make([]*repository.Production, 0, len(values))
	for _, v := range values {
		country := v
		productions = append(productions, &repository.Production{Country: &country})
	}

	if err := createBatch(ctx, p.db, productions); err != nil {
		return 0, 0, err
	}
	stats.Productions = len(productions)
	return len(productions), 0, nil
}

// insertMedia bulk-inserts media rows from the raw titles source,
// keeping only the first occurrence of each title. NULL score and vote
// values are preserved here.
func (p *Pipeline) insertMedia(ctx context.Context, titles []TitleRow, _ []MergedRow, stats *Stats) (int, int, error) {
	seen := make(map[string]struct{}, len(titles))
	media := make([]*repository.Media, 0, len(titles))
	duplicates := 0
	for _, t := range titles {
		if _, ok := seen[t.Title]; ok {
			duplicates++
			continue
		}
		seen[t.Title] = struct{}{}
		media = append(media, &repository.Media{
			ID:               t.ID,
			Title:            t.Title,
			Type:             repository.MediaType(strings.ToUpper(strings.TrimSpace(t.Type))),
			ReleaseYear:      t.ReleaseYear,
			AgeCertification: t.AgeCertification,
			Runtime:          t.Runtime,
			Seasons:          t.Seasons,
			IMDBScore:        t.IMDBScore,
			IMDBVotes:        t.IMDBVotes,
		})
	}

	if err := createBatch(ctx, p.db, media); err != nil {
		return 0, 0, err
	}
	stats.Media = len(media)
	stats.DuplicateTitles = duplicates
	return len(media), duplicates, nil
}

// linkActors wires the media-actor association set.
func (p *Pipeline) linkActors(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	inserted, skipped, err := p.linkPeople(ctx, merged, "ACTOR", "media_actor", "actor_id", &repository.Actor{})
	stats.ActorLinks = inserted
	stats.SkippedLinks += skipped
	return inserted, skipped, err
}

// linkDirectors wires the media-director association set.
func (p *Pipeline) linkDirectors(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	inserted, skipped, err := p.linkPeople(ctx, merged, "DIRECTOR", "media_director", "director_id", &repository.Director{})
	stats.DirectorLinks = inserted
	stats.SkippedLinks += skipped
	return inserted, skipped, err
}

// linkPeople resolves (media id, trimmed name) pairs against the
// already-inserted rows and appends the links that resolve on both
// sides. Dangling ids or names are skipped, never errors.
func (p *Pipeline) linkPeople(
	ctx context.Context,
	merged []MergedRow,
	role, joinTable, entityColumn string,
	entityModel interface{},
) (int, int, error) {
	mediaIDs, err := p.loadMediaIDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	nameToID, err := p.loadNameIndex(ctx, entityModel)
	if err != nil {
		return 0, 0, err
	}

	type pair struct {
		mediaID  string
		entityID int
	}
	seen := make(map[pair]struct{})
	links := make([]map[string]interface{}, 0, len(merged))
	skipped := 0

	for _, row := range merged {
		if row.Role != role {
			continue
		}
		name := strings.TrimSpace(row.Name)
		entityID, ok := nameToID[name]
		if !ok {
			skipped++
			continue
		}
		if _, ok := mediaIDs[row.MediaID]; !ok {
			skipped++
			continue
		}
		key := pair{row.MediaID, entityID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, map[string]interface{}{
			"media_id":   row.MediaID,
			entityColumn: entityID,
		})
	}

	if err := p.insertLinks(ctx, joinTable, links); err != nil {
		return 0, 0, err
	}
	return len(links), skipped, nil
}

// linkGenres wires the media-genre association set from the per-title
// genre list literals.
func (p *Pipeline) linkGenres(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	index, err := p.loadGenreIndex(ctx)
	if err != nil {
		return 0, 0, err
	}
	inserted, skipped, err := p.linkListValues(ctx, merged,
		func(r MergedRow) string { return r.Genres },
		index, "media_genre", "genre_id")
	stats.GenreLinks = inserted
	stats.SkippedLinks += skipped
	return inserted, skipped, err
}

// linkProductions wires the media-production association set. The "XX"
// sentinel never resolves because it was never inserted.
func (p *Pipeline) linkProductions(ctx context.Context, _ []TitleRow, merged []MergedRow, stats *Stats) (int, int, error) {
	index, err := p.loadProductionIndex(ctx)
	if err != nil {
		return 0, 0, err
	}
	inserted, skipped, err := p.linkListValues(ctx, merged,
		func(r MergedRow) string { return r.ProductionCountries },
		index, "media_production", "production_id")
	stats.ProductionLinks = inserted
	stats.SkippedLinks += skipped
	return inserted, skipped, err
}

// linkListValues deduplicates the merged rows by title, parses the list
// literal per row, and links every value that resolves to an existing
// entity. Unresolved values are skipped.
func (p *Pipeline) linkListValues(
	ctx context.Context,
	merged []MergedRow,
	column func(MergedRow) string,
	valueToID map[string]int,
	joinTable, entityColumn string,
) (int, int, error) {
	mediaIDs, err := p.loadMediaIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	type pair struct {
		mediaID  string
		entityID int
	}
	seenTitle := make(map[string]struct{})
	seenPair := make(map[pair]struct{})
	links := make([]map[string]interface{}, 0, len(merged))
	skipped := 0

	for _, row := range merged {
		if _, ok := seenTitle[row.Title]; ok {
			continue
		}
		seenTitle[row.Title] = struct{}{}

		if _, ok := mediaIDs[row.MediaID]; !ok {
			skipped++
			continue
		}

		values, err := ParseListLiteral(column(row))
		if err != nil {
			return 0, 0, err
		}
		for _, value := range values {
			entityID, ok := valueToID[value]
			if !ok {
				skipped++
				continue
			}
			key := pair{row.MediaID, entityID}
			if _, ok := seenPair[key]; ok {
				continue
			}
			seenPair[key] = struct{}{}
			links = append(links, map[string]interface{}{
				"media_id":   row.MediaID,
				entityColumn: entityID,
			})
		}
	}

	if err := p.insertLinks(ctx, joinTable, links); err != nil {
		return 0, 0, err
	}
	return len(links), skipped, nil
}

// createBatch inserts entity rows in batches inside one transaction.
// An empty batch is a no-op, not an error.
func createBatch[T any](ctx context.Context, db *gorm.DB, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

// insertLinks appends join rows in batches inside one transaction.
// Existing pairs are left untouched.
func (p *Pipeline) insertLinks(ctx context.Context, joinTable string, links []map[string]interface{}) error {
	if len(links) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(links); start += insertBatchSize {
			end := start + insertBatchSize
			if end > len(links) {
				end = len(links)
			}
			batch := links[start:end]
			if err := tx.Table(joinTable).Clauses(clause.OnConflict{DoNothing: true}).Create(batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Pipeline) loadMediaIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	if err := p.db.WithContext(ctx).Model(&repository.Media{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// loadNameIndex maps trimmed entity names to IDs for actors or directors.
func (p *Pipeline) loadNameIndex(ctx context.Context, model interface{}) (map[string]int, error) {
	type entity struct {
		ID   int
		Name string
	}
	var entities []entity
	if err := p.db.WithContext(ctx).Model(model).Select("id, name").Find(&entities).Error; err != nil {
		return nil, err
	}
	index := make(map[string]int, len(entities))
	for _, e := range entities {
		index[strings.TrimSpace(e.Name)] = e.ID
	}
	return index, nil
}

func (p *Pipeline) loadGenreIndex(ctx context.Context) (map[string]int, error) {
	var genres []repository.Genre
	if err := p.db.WithContext(ctx).Find(&genres).Error; err != nil {
		return nil, err
	}
	index := make(map[string]int, len(genres))
	for _, g := range genres {
		index[strings.TrimSpace(g.GenreType)] = g.ID
	}
	return index, nil
}

func (p *Pipeline) loadProductionIndex(ctx context.Context) (map[string]int, error) {
	var productions []repository.Production
	if err := p.db.WithContext(ctx).Find(&productions).Error; err != nil {
		return nil, err
	}
	index := make(map[string]int, len(productions))
	for _, pr := range productions {
		if pr.Country != nil {
			index[strings.TrimSpace(*pr.Country)] = pr.ID
		}
	}
	return index, nil
}

// distinctNames extracts the distinct trimmed person names for a role,
// preserving first-seen order.
func distinctNames(merged []MergedRow, role string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range merged {
		if row.Role != role {
			continue
		}
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// distinctListValues unions the parsed list values across all merged
// rows, preserving first-seen order and discarding the filter value.
func distinctListValues(merged []MergedRow, column func(MergedRow) string, filter string) ([]string, error) {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range merged {
		parsed, err := ParseListLiteral(column(row))
		if err != nil {
			return nil, err
		}
		for _, v := range parsed {
			if filter != "" && v == filter {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	return values, nil
}
