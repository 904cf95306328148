package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/service"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/errors"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/events"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/logger"
	"github.com/VytautasPliadis/Recommendation-Engine/test/testutil"
)

type CatalogServiceTestSuite struct {
	suite.Suite

	db  *gorm.DB
	svc *service.CatalogService
	ctx context.Context
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.db = testutil.NewTestDB(suite.T())
	repo := repository.NewGormRepository(suite.db)
	eventBus := events.NewInMemoryEventBus(logger.NewNoop())
	suite.Require().NoError(eventBus.Start(context.Background()))
	suite.svc = service.NewCatalogService(repo, eventBus, logger.NewNoop())
	suite.ctx = context.Background()
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (suite *CatalogServiceTestSuite) TestCreateActor() {
	actor, err := suite.svc.CreateActor(suite.ctx, "  Jane Doe  ")
	suite.Require().NoError(err)
	suite.Equal("Jane Doe", actor.Name, "name is trimmed before storage")
	suite.NotZero(actor.ID)
}

func (suite *CatalogServiceTestSuite) TestCreateActorEmptyName() {
	_, err := suite.svc.CreateActor(suite.ctx, "   ")
	suite.Require().Error(err)
	suite.True(errors.IsBadRequest(err))
}

func (suite *CatalogServiceTestSuite) TestCreateActorDuplicate() {
	_, err := suite.svc.CreateActor(suite.ctx, "Jane Doe")
	suite.Require().NoError(err)

	_, err = suite.svc.CreateActor(suite.ctx, "Jane Doe")
	suite.Require().Error(err)
	suite.True(errors.IsConflict(err))
}

func (suite *CatalogServiceTestSuite) TestGetActorNotFound() {
	_, err := suite.svc.GetActor(suite.ctx, "Nobody")
	suite.Require().Error(err)
	suite.True(errors.IsNotFound(err))
}

func (suite *CatalogServiceTestSuite) TestCreateDirectorDuplicate() {
	_, err := suite.svc.CreateDirector(suite.ctx, "Sofia Coppola")
	suite.Require().NoError(err)

	_, err = suite.svc.CreateDirector(suite.ctx, "Sofia Coppola")
	suite.Require().Error(err)
	suite.True(errors.IsConflict(err))
}

func (suite *CatalogServiceTestSuite) TestCreateMedia() {
	media, err := suite.svc.CreateMedia(suite.ctx, &repository.Media{
		ID:          "tm123",
		Title:       "New Film",
		Type:        repository.MediaTypeMovie,
		ReleaseYear: 2020,
	})
	suite.Require().NoError(err)

	fetched, err := suite.svc.GetMedia(suite.ctx, "New Film")
	suite.Require().NoError(err)
	suite.Equal(media.ID, fetched.ID)
}

func (suite *CatalogServiceTestSuite) TestCreateMediaRequiresIDAndTitle() {
	_, err := suite.svc.CreateMedia(suite.ctx, &repository.Media{Title: "No ID"})
	suite.Require().Error(err)
	suite.True(errors.IsBadRequest(err))
}

func (suite *CatalogServiceTestSuite) TestCreateMediaDuplicateTitle() {
	_, err := suite.svc.CreateMedia(suite.ctx, &repository.Media{ID: "tm1", Title: "Same"})
	suite.Require().NoError(err)

	_, err = suite.svc.CreateMedia(suite.ctx, &repository.Media{ID: "tm2", Title: "Same"})
	suite.Require().Error(err)
	suite.True(errors.IsConflict(err))
}

func (suite *CatalogServiceTestSuite) TestAssociateActorWithMedia() {
	actor, err := suite.svc.CreateActor(suite.ctx, "Jane Doe")
	suite.Require().NoError(err)
	media, err := suite.svc.CreateMedia(suite.ctx, &repository.Media{ID: "tm1", Title: "Film"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.svc.AssociateActorWithMedia(suite.ctx, actor.ID, media.ID))

	// Repeating the association is a no-op.
	suite.Require().NoError(suite.svc.AssociateActorWithMedia(suite.ctx, actor.ID, media.ID))

	var count int64
	suite.Require().NoError(suite.db.Table("media_actor").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CatalogServiceTestSuite) TestAssociateActorMissingMedia() {
	actor, err := suite.svc.CreateActor(suite.ctx, "Jane Doe")
	suite.Require().NoError(err)

	err = suite.svc.AssociateActorWithMedia(suite.ctx, actor.ID, "missing")
	suite.Require().Error(err)
	suite.True(errors.IsNotFound(err))
}

func (suite *CatalogServiceTestSuite) TestAssociateDirectorWithMedia() {
	director, err := suite.svc.CreateDirector(suite.ctx, "Sofia Coppola")
	suite.Require().NoError(err)
	media, err := suite.svc.CreateMedia(suite.ctx, &repository.Media{ID: "tm1", Title: "Film"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.svc.AssociateDirectorWithMedia(suite.ctx, director.ID, media.ID))

	var count int64
	suite.Require().NoError(suite.db.Table("media_director").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CatalogServiceTestSuite) TestAssociateDirectorMissingDirector() {
	media, err := suite.svc.CreateMedia(suite.ctx, &repository.Media{ID: "tm1", Title: "Film"})
	suite.Require().NoError(err)

	err = suite.svc.AssociateDirectorWithMedia(suite.ctx, 999, media.ID)
	suite.Require().Error(err)
	suite.True(errors.IsNotFound(err))
}
