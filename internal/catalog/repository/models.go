package repository

// MediaType represents the type of a media title.
type MediaType string

const (
	MediaTypeMovie MediaType = "MOVIE"
	MediaTypeShow  MediaType = "SHOW"
)

// Media represents a movie or show in the catalog. Identity is the
// 9-character external catalog ID; titles are unique across the table.
type Media struct {
	ID               string    `json:"id" gorm:"type:varchar(9);primaryKey"`
	Title            string    `json:"title" gorm:"type:varchar(105);uniqueIndex;not null"`
	Type             MediaType `json:"type" gorm:"column:media_type;type:varchar(5)"`
	ReleaseYear      int       `json:"release_year"`
	AgeCertification string    `json:"age_certification" gorm:"type:varchar(5)"`
	Runtime          int       `json:"runtime"` // minutes
	Seasons          *float64  `json:"seasons" gorm:"type:decimal(4,2)"`
	IMDBScore        *float64  `json:"imdb_score" gorm:"column:imdb_score;type:decimal(4,2)"`
	IMDBVotes        *int      `json:"imdb_votes" gorm:"column:imdb_votes"`

	// Relationships
	Actors      []Actor      `json:"-" gorm:"many2many:media_actor"`
	Directors   []Director   `json:"-" gorm:"many2many:media_director"`
	Genres      []Genre      `json:"-" gorm:"many2many:media_genre"`
	Productions []Production `json:"-" gorm:"many2many:media_production"`
}

// TableName overrides the table name for Media.
func (Media) TableName() string { return "media" }

// Actor represents a cast member. Names are stored trimmed and are
// unique across the table.
type Actor struct {
	ID   int    `json:"actor_id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(80);uniqueIndex;not null"`

	Media []Media `json:"-" gorm:"many2many:media_actor"`
}

// TableName overrides the table name for Actor.
func (Actor) TableName() string { return "actor" }

// Director represents a crew member with the director role.
type Director struct {
	ID   int    `json:"director_id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(80);uniqueIndex;not null"`

	Media []Media `json:"-" gorm:"many2many:media_director"`
}

// TableName overrides the table name for Director.
func (Director) TableName() string { return "director" }

// Genre represents a genre code, e.g. "drama".
type Genre struct {
	ID        int    `json:"genre_id" gorm:"primaryKey"`
	GenreType string `json:"genre_type" gorm:"type:varchar(15);uniqueIndex"`

	Media []Media `json:"-" gorm:"many2many:media_genre"`
}

// TableName overrides the table name for Genre.
func (Genre) TableName() string { return "genre" }

// Production represents a production country as a 2-letter code.
// The unknown-country sentinel "XX" is never stored.
type Production struct {
	ID      int     `json:"country_id" gorm:"primaryKey"`
	Country *string `json:"country" gorm:"type:varchar(2);uniqueIndex"`

	Media []Media `json:"-" gorm:"many2many:media_production"`
}

// TableName overrides the table name for Production.
func (Production) TableName() string { return "production" }

// AllModels lists every model for schema migration, entities before
// association-bearing tables.
func AllModels() []interface{} {
	return []interface{}{
		&Actor{},
		&Director{},
		&Genre{},
		&Production{},
		&Media{},
	}
}
