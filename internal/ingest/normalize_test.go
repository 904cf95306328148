package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectionsApply(t *testing.T) {
	corrections := DefaultCorrections()

	assert.Equal(t, "['LB', 'US']", corrections.Apply("['Lebanon', 'US']"))
	assert.Equal(t, "['FR']", corrections.Apply("['FR']"))
	assert.Equal(t, "", corrections.Apply(""))
}

func TestMerge(t *testing.T) {
	score := 7.8
	votes := 1000
	titles := []TitleRow{
		{
			ID:                  "tm100",
			Title:               "Known Film",
			Genres:              "['drama']",
			ProductionCountries: "['Lebanon']",
			IMDBScore:           &score,
			IMDBVotes:           &votes,
		},
		{
			ID:     "tm200",
			Title:  "Unrated Film",
			Genres: "['comedy']",
		},
	}
	credits := []CreditRow{
		{MediaID: "tm100", Name: "Jane Doe", Role: " actor "},
		{MediaID: "tm200", Name: "John Roe", Role: "director"},
		{MediaID: "tm999", Name: "Nobody", Role: "ACTOR"},
	}

	merged := Merge(titles, credits, DefaultCorrections())
	require.Len(t, merged, 2, "credits without a titles row are dropped")

	assert.Equal(t, "ACTOR", merged[0].Role)
	assert.Equal(t, "Known Film", merged[0].Title)
	assert.Equal(t, "['LB']", merged[0].ProductionCountries)
	assert.Equal(t, 7.8, merged[0].IMDBScore)
	assert.Equal(t, 1000, merged[0].IMDBVotes)

	assert.Equal(t, "DIRECTOR", merged[1].Role)
	assert.Equal(t, 0.0, merged[1].IMDBScore, "missing score zero-fills")
	assert.Equal(t, 0, merged[1].IMDBVotes, "missing votes zero-fill")
}

func TestMergeKeepsFirstDuplicateTitleRow(t *testing.T) {
	titles := []TitleRow{
		{ID: "tm1", Title: "First"},
		{ID: "tm1", Title: "Second"},
	}
	credits := []CreditRow{{MediaID: "tm1", Name: "Jane Doe", Role: "ACTOR"}}

	merged := Merge(titles, credits, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "First", merged[0].Title)
}

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "single quoted", input: "['drama', 'comedy']", want: []string{"drama", "comedy"}},
		{name: "double quoted", input: `["US", "GB"]`, want: []string{"US", "GB"}},
		{name: "single element", input: "['drama']", want: []string{"drama"}},
		{name: "empty list", input: "[]", want: nil},
		{name: "blank", input: "   ", want: nil},
		{name: "quoted comma", input: "['a, b', 'c']", want: []string{"a, b", "c"}},
		{name: "missing brackets", input: "drama", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseListLiteral(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
