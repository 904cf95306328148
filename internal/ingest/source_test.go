package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTitles(t *testing.T) {
	src := strings.NewReader(
		"index,id,title,type,release_year,age_certification,runtime,genres,production_countries,seasons,imdb_id,imdb_score,imdb_votes\n" +
			"0,tm84618,Taxi Driver,MOVIE,1976.0,R,113,\"['crime', 'drama']\",\"['US']\",,tt0075314,8.3,795222.0\n" +
			"1,tm999999,Unrated,SHOW,2021,,30,['comedy'],[],1.0,,,\n")

	rows, err := ReadTitles(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "tm84618", rows[0].ID)
	assert.Equal(t, "Taxi Driver", rows[0].Title)
	assert.Equal(t, 1976, rows[0].ReleaseYear, "fractional years parse")
	require.NotNil(t, rows[0].IMDBScore)
	assert.Equal(t, 8.3, *rows[0].IMDBScore)
	require.NotNil(t, rows[0].IMDBVotes)
	assert.Equal(t, 795222, *rows[0].IMDBVotes)

	assert.Nil(t, rows[1].IMDBScore, "blank score stays nil")
	assert.Nil(t, rows[1].IMDBVotes, "blank votes stay nil")
	require.NotNil(t, rows[1].Seasons)
	assert.Equal(t, 1.0, *rows[1].Seasons)
}

func TestReadTitlesTruncatedRow(t *testing.T) {
	src := strings.NewReader(
		"id,title,type,release_year,age_certification,runtime,seasons,imdb_score,imdb_votes,genres,production_countries\n" +
			"tm1,Truncated\n")

	_, err := ReadTitles(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong number of fields")
}

func TestReadCreditsTruncatedRow(t *testing.T) {
	src := strings.NewReader("id,name,role\n" + "tm1,Jane Doe\n")

	_, err := ReadCredits(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong number of fields")
}

func TestReadTitlesMissingColumn(t *testing.T) {
	src := strings.NewReader("id,title\n" + "tm1,Something\n")

	_, err := ReadTitles(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestReadCredits(t *testing.T) {
	src := strings.NewReader(
		"index,person_id,id,name,character,role\n" +
			"0,3748,tm84618,Robert De Niro,Travis Bickle,ACTOR\n" +
			"1,14658,tm84618,Martin Scorsese,,DIRECTOR\n")

	rows, err := ReadCredits(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CreditRow{MediaID: "tm84618", Name: "Robert De Niro", Role: "ACTOR"}, rows[0])
	assert.Equal(t, CreditRow{MediaID: "tm84618", Name: "Martin Scorsese", Role: "DIRECTOR"}, rows[1])
}

func TestReadCreditsEmptySource(t *testing.T) {
	_, err := ReadCredits(strings.NewReader(""))
	require.Error(t, err)
}
