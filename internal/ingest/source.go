package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TitleRow is one row of the raw titles source. Score and votes stay
// nullable here; blanks become NULLs in the media table.
type TitleRow struct {
	ID                  string
	Title               string
	Type                string
	ReleaseYear         int
	AgeCertification    string
	Runtime             int
	Seasons             *float64
	IMDBScore           *float64
	IMDBVotes           *int
	Genres              string // serialized list literal, e.g. ['drama', 'comedy']
	ProductionCountries string // serialized list literal of 2-letter codes
}

// CreditRow is one row of the raw credits source: a (media, person,
// role) triple. Extra columns (person_id, character) are ignored.
type CreditRow struct {
	MediaID string
	Name    string
	Role    string
}

// ReadTitles reads the titles CSV source. Columns are located by header
// name; the required columns must all be present.
func ReadTitles(r io.Reader) ([]TitleRow, error) {
	records, header, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read titles source: %w", err)
	}

	required := []string{
		"id", "title", "type", "release_year", "age_certification",
		"runtime", "seasons", "imdb_score", "imdb_votes",
		"genres", "production_countries",
	}
	cols, err := mapColumns(header, required)
	if err != nil {
		return nil, fmt.Errorf("titles source: %w", err)
	}

	rows := make([]TitleRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, TitleRow{
			ID:                  rec[cols["id"]],
			Title:               rec[cols["title"]],
			Type:                rec[cols["type"]],
			ReleaseYear:         parseInt(rec[cols["release_year"]]),
			AgeCertification:    rec[cols["age_certification"]],
			Runtime:             parseInt(rec[cols["runtime"]]),
			Seasons:             parseNullFloat(rec[cols["seasons"]]),
			IMDBScore:           parseNullFloat(rec[cols["imdb_score"]]),
			IMDBVotes:           parseNullInt(rec[cols["imdb_votes"]]),
			Genres:              rec[cols["genres"]],
			ProductionCountries: rec[cols["production_countries"]],
		})
	}
	return rows, nil
}

// ReadCredits reads the credits CSV source.
func ReadCredits(r io.Reader) ([]CreditRow, error) {
	records, header, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read credits source: %w", err)
	}

	cols, err := mapColumns(header, []string{"id", "name", "role"})
	if err != nil {
		return nil, fmt.Errorf("credits source: %w", err)
	}

	rows := make([]CreditRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, CreditRow{
			MediaID: rec[cols["id"]],
			Name:    rec[cols["name"]],
			Role:    rec[cols["role"]],
		})
	}
	return rows, nil
}

func readAll(r io.Reader) (records [][]string, header []string, err error) {
	// Every record must match the header width; a truncated row is a
	// source error, not a panic further down.
	reader := csv.NewReader(r)

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty source")
	}
	return all[1:], all[0], nil
}

// mapColumns resolves header names to indices. Unknown extra columns
// (index, person_id, character) are simply never looked up.
func mapColumns(header []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Fractional values (pandas exports ints as "1998.0") round down.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseNullInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}

func parseNullFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
