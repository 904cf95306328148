package recommend_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/recommend"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/logger"
	"github.com/VytautasPliadis/Recommendation-Engine/test/testutil"
)

type ServiceTestSuite struct {
	suite.Suite

	db  *gorm.DB
	svc *recommend.Service
	ctx context.Context
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.db = testutil.NewTestDB(suite.T())
	suite.svc = recommend.NewService(suite.db, recommend.DefaultOptions(), logger.NewNoop())
	suite.ctx = context.Background()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_WindowIsInclusive() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")

	lowEdge := testutil.CreateTestMedia(suite.T(), suite.db, "Low Edge", testutil.Float(6.5), testutil.Int(100))
	highEdge := testutil.CreateTestMedia(suite.T(), suite.db, "High Edge", testutil.Float(7.5), testutil.Int(200))
	below := testutil.CreateTestMedia(suite.T(), suite.db, "Below", testutil.Float(6.4), testutil.Int(300))
	above := testutil.CreateTestMedia(suite.T(), suite.db, "Above", testutil.Float(7.6), testutil.Int(400))

	testutil.LinkGenre(suite.T(), suite.db, lowEdge, drama)
	testutil.LinkGenre(suite.T(), suite.db, highEdge, drama)
	testutil.LinkGenre(suite.T(), suite.db, below, drama)
	testutil.LinkGenre(suite.T(), suite.db, above, drama)

	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Require().Len(recs, 2)
	suite.Equal("High Edge", recs[0].Title)
	suite.Equal("Low Edge", recs[1].Title)
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_OrdersByVotesDescending() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")

	alpha := testutil.CreateTestMedia(suite.T(), suite.db, "Alpha", testutil.Float(7.0), testutil.Int(50))
	beta := testutil.CreateTestMedia(suite.T(), suite.db, "Beta", testutil.Float(7.2), testutil.Int(500))
	gamma := testutil.CreateTestMedia(suite.T(), suite.db, "Gamma", testutil.Float(6.8), testutil.Int(200))

	testutil.LinkGenre(suite.T(), suite.db, alpha, drama)
	testutil.LinkGenre(suite.T(), suite.db, beta, drama)
	testutil.LinkGenre(suite.T(), suite.db, gamma, drama)

	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Require().Len(recs, 3)
	suite.Equal([]string{"Beta", "Gamma", "Alpha"}, titles(recs))
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_SkipsUnscoredTitles() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")

	scored := testutil.CreateTestMedia(suite.T(), suite.db, "Scored", testutil.Float(7.0), testutil.Int(10))
	unscored := testutil.CreateTestMedia(suite.T(), suite.db, "Unscored", nil, nil)

	testutil.LinkGenre(suite.T(), suite.db, scored, drama)
	testutil.LinkGenre(suite.T(), suite.db, unscored, drama)

	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Require().Len(recs, 1)
	suite.Equal("Scored", recs[0].Title)
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_OtherGenresExcluded() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")
	comedy := testutil.CreateTestGenre(suite.T(), suite.db, "comedy")

	inDrama := testutil.CreateTestMedia(suite.T(), suite.db, "In Drama", testutil.Float(7.0), testutil.Int(10))
	inComedy := testutil.CreateTestMedia(suite.T(), suite.db, "In Comedy", testutil.Float(7.0), testutil.Int(10))

	testutil.LinkGenre(suite.T(), suite.db, inDrama, drama)
	testutil.LinkGenre(suite.T(), suite.db, inComedy, comedy)

	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Require().Len(recs, 1)
	suite.Equal("In Drama", recs[0].Title)
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_CapsResults() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")

	for i := 0; i < 15; i++ {
		media := testutil.CreateTestMedia(suite.T(), suite.db,
			fmt.Sprintf("Title %02d", i), testutil.Float(7.0), testutil.Int(1000-i))
		testutil.LinkGenre(suite.T(), suite.db, media, drama)
	}

	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Len(recs, 10)
	suite.Equal("Title 00", recs[0].Title)
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_NoMatchesReturnsEmpty() {
	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "western", 7.0)
	suite.Require().NoError(err)
	suite.Empty(recs)
}

func (suite *ServiceTestSuite) TestByActor_OrdersByScoreThenVotes() {
	actor := testutil.CreateTestActor(suite.T(), suite.db, "Johnny Depp")
	for _, film := range []struct {
		title string
		score float64
		votes int
	}{
		{"Tied High Votes", 7.5, 900},
		{"Tied Low Votes", 7.5, 100},
		{"Top Score", 8.1, 10},
	} {
		media := testutil.CreateTestMedia(suite.T(), suite.db, film.title,
			testutil.Float(film.score), testutil.Int(film.votes))
		testutil.LinkActor(suite.T(), suite.db, media, actor)
	}

	recs, err := suite.svc.ByActor(suite.ctx, "Johnny Depp")
	suite.Require().NoError(err)
	suite.Equal([]string{"Top Score", "Tied High Votes", "Tied Low Votes"}, titles(recs))
}

func (suite *ServiceTestSuite) TestByActor_ExactNameMatchOnly() {
	actor := testutil.CreateTestActor(suite.T(), suite.db, "Johnny Depp")
	media := testutil.CreateTestMedia(suite.T(), suite.db, "Some Film", testutil.Float(7.0), testutil.Int(10))
	testutil.LinkActor(suite.T(), suite.db, media, actor)

	recs, err := suite.svc.ByActor(suite.ctx, "johnny depp")
	suite.Require().NoError(err)
	suite.Empty(recs)
}

func (suite *ServiceTestSuite) TestByActor_NullValuesProjectToZero() {
	actor := testutil.CreateTestActor(suite.T(), suite.db, "Uncredited")
	media := testutil.CreateTestMedia(suite.T(), suite.db, "No Ratings", nil, nil)
	testutil.LinkActor(suite.T(), suite.db, media, actor)

	recs, err := suite.svc.ByActor(suite.ctx, "Uncredited")
	suite.Require().NoError(err)
	suite.Require().Len(recs, 1)
	suite.Equal(0.0, recs[0].IMDBScore)
	suite.Equal(0.0, recs[0].IMDBVotes)
}

func (suite *ServiceTestSuite) TestByActor_UnscoredTitlesSortLast() {
	actor := testutil.CreateTestActor(suite.T(), suite.db, "Jane Doe")

	unscored := testutil.CreateTestMedia(suite.T(), suite.db, "Unrated", nil, nil)
	low := testutil.CreateTestMedia(suite.T(), suite.db, "Low", testutil.Float(2.1), testutil.Int(5))
	high := testutil.CreateTestMedia(suite.T(), suite.db, "High", testutil.Float(9.0), testutil.Int(50))

	testutil.LinkActor(suite.T(), suite.db, unscored, actor)
	testutil.LinkActor(suite.T(), suite.db, low, actor)
	testutil.LinkActor(suite.T(), suite.db, high, actor)

	recs, err := suite.svc.ByActor(suite.ctx, "Jane Doe")
	suite.Require().NoError(err)
	suite.Equal([]string{"High", "Low", "Unrated"}, titles(recs),
		"a NULL score must never rank above a real one")
	suite.Equal(0.0, recs[2].IMDBScore)
}

func (suite *ServiceTestSuite) TestByGenreTargetScore_NullVotesSortLast() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")

	noVotes := testutil.CreateTestMedia(suite.T(), suite.db, "No Votes", testutil.Float(7.0), nil)
	voted := testutil.CreateTestMedia(suite.T(), suite.db, "Voted", testutil.Float(7.0), testutil.Int(1))

	testutil.LinkGenre(suite.T(), suite.db, noVotes, drama)
	testutil.LinkGenre(suite.T(), suite.db, voted, drama)

	recs, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Equal([]string{"Voted", "No Votes"}, titles(recs))
}

func (suite *ServiceTestSuite) TestByDirector_ReturnsLinkedTitles() {
	director := testutil.CreateTestDirector(suite.T(), suite.db, "Sofia Coppola")
	other := testutil.CreateTestDirector(suite.T(), suite.db, "Someone Else")

	hers := testutil.CreateTestMedia(suite.T(), suite.db, "Hers", testutil.Float(7.5), testutil.Int(100))
	theirs := testutil.CreateTestMedia(suite.T(), suite.db, "Theirs", testutil.Float(9.0), testutil.Int(100))

	testutil.LinkDirector(suite.T(), suite.db, hers, director)
	testutil.LinkDirector(suite.T(), suite.db, theirs, other)

	recs, err := suite.svc.ByDirector(suite.ctx, "Sofia Coppola")
	suite.Require().NoError(err)
	suite.Require().Len(recs, 1)
	suite.Equal("Hers", recs[0].Title)
}

func (suite *ServiceTestSuite) TestQueriesAreRepeatable() {
	drama := testutil.CreateTestGenre(suite.T(), suite.db, "drama")
	media := testutil.CreateTestMedia(suite.T(), suite.db, "Stable", testutil.Float(7.0), testutil.Int(10))
	testutil.LinkGenre(suite.T(), suite.db, media, drama)

	first, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	second, err := suite.svc.ByGenreTargetScore(suite.ctx, "drama", 7.0)
	suite.Require().NoError(err)
	suite.Equal(first, second)
}

func titles(recs []recommend.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}
