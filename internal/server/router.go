package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/service"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/recommend"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/server/handlers"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// RouterConfig carries the dependencies needed to build the HTTP router.
type RouterConfig struct {
	DB          *gorm.DB
	Catalog     *service.CatalogService
	Recommender *recommend.Service
	Logger      interfaces.Logger
	Environment string
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(cfg.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	recHandler := handlers.NewRecommendationHandler(cfg.Recommender, cfg.Logger)
	catalogHandler := handlers.NewCatalogHandler(cfg.Catalog)
	exploreHandler := handlers.NewExploreHandler(cfg.DB, cfg.Logger)

	router.GET("/healthz", handlers.HealthCheck)

	router.GET("/recommendations/genre-target-score/", recHandler.ByGenreTargetScore)
	router.GET("/recommendations/actor/", recHandler.ByActor)
	router.GET("/recommendations/director/", recHandler.ByDirector)

	router.POST("/actors/", catalogHandler.CreateActor)
	router.GET("/actors/:name", catalogHandler.GetActor)
	router.POST("/directors/", catalogHandler.CreateDirector)
	router.GET("/directors/:name", catalogHandler.GetDirector)
	router.POST("/media/", catalogHandler.CreateMedia)
	router.GET("/media/:title", catalogHandler.GetMedia)
	router.POST("/associate-actor-with-media/", catalogHandler.AssociateActorWithMedia)
	router.POST("/associate-director-with-media/", catalogHandler.AssociateDirectorWithMedia)

	router.POST("/explore/", exploreHandler.Explore)

	return router
}
