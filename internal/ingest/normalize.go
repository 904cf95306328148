package ingest

import (
	"fmt"
	"strings"
)

// Corrections is a declared table of raw source values replaced with
// canonical ones during the merge step.
type Corrections map[string]string

// DefaultCorrections returns the known data-quality fixes for the raw
// sources. The titles data carries "Lebanon" where the 2-letter country
// code is expected.
func DefaultCorrections() Corrections {
	return Corrections{
		"Lebanon": "LB",
	}
}

// Apply replaces every raw occurrence inside the value with its
// canonical form.
func (c Corrections) Apply(value string) string {
	for raw, canonical := range c {
		value = strings.ReplaceAll(value, raw, canonical)
	}
	return value
}

// MergedRow is one credits row joined with its titles row, the working
// unit for entity extraction and relationship wiring. Score and votes
// are carried zero-filled so the merged view is total and NULL-free;
// the wiring steps themselves never read them. The media insert reads
// the raw titles rows instead, where NULLs are preserved.
type MergedRow struct {
	MediaID             string
	Name                string
	Role                string
	Title               string
	Genres              string
	ProductionCountries string
	IMDBScore           float64
	IMDBVotes           int
}

// Merge inner-joins credits and titles on media id, upper-cases roles,
// zero-fills missing score/votes, and applies the corrections table to
// the production-country column.
func Merge(titles []TitleRow, credits []CreditRow, corrections Corrections) []MergedRow {
	byID := make(map[string]TitleRow, len(titles))
	for _, t := range titles {
		if _, ok := byID[t.ID]; !ok {
			byID[t.ID] = t
		}
	}

	merged := make([]MergedRow, 0, len(credits))
	for _, c := range credits {
		t, ok := byID[c.MediaID]
		if !ok {
			continue
		}

		row := MergedRow{
			MediaID:             c.MediaID,
			Name:                c.Name,
			Role:                strings.ToUpper(strings.TrimSpace(c.Role)),
			Title:               t.Title,
			Genres:              t.Genres,
			ProductionCountries: corrections.Apply(t.ProductionCountries),
		}
		if t.IMDBScore != nil {
			row.IMDBScore = *t.IMDBScore
		}
		if t.IMDBVotes != nil {
			row.IMDBVotes = *t.IMDBVotes
		}
		merged = append(merged, row)
	}
	return merged
}

// ParseListLiteral decodes the textual list form used by the raw data,
// e.g. ['drama', 'comedy']. Elements may be single- or double-quoted or
// bare; surrounding whitespace is dropped. A blank or empty literal
// yields nil.
func ParseListLiteral(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("malformed list literal %q", s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}

	var values []string
	for _, part := range splitTopLevel(inner) {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `'"`)
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values, nil
}

// splitTopLevel splits on commas outside quotes.
func splitTopLevel(s string) []string {
	var parts []string
	var quote rune
	start := 0
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
