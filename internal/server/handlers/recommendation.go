package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/recommend"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// defaultTargetScore is the documented default for the genre query.
const defaultTargetScore = 7.0

// RecommendationResponse is the boundary projection of a
// recommendation: only title and release year are forwarded.
type RecommendationResponse struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
}

// RecommendationHandler serves the three recommendation queries.
type RecommendationHandler struct {
	svc    *recommend.Service
	logger interfaces.Logger
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(svc *recommend.Service, logger interfaces.Logger) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, logger: logger}
}

// ByGenreTargetScore handles GET /recommendations/genre-target-score.
func (h *RecommendationHandler) ByGenreTargetScore(c *gin.Context) {
	genreType := c.Query("genre_type")
	if genreType == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "genre_type is required"})
		return
	}

	targetScore := defaultTargetScore
	if raw := c.Query("target_imdb_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Detail: "target_imdb_score must be a number"})
			return
		}
		targetScore = parsed
	}

	recs, err := h.svc.ByGenreTargetScore(c.Request.Context(), genreType, targetScore)
	if err != nil {
		h.logger.Error("Error in getting recommendations", interfaces.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "an error occurred while fetching recommendations"})
		return
	}

	c.JSON(http.StatusOK, toResponse(recs))
}

// ByActor handles GET /recommendations/actor.
func (h *RecommendationHandler) ByActor(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "name is required"})
		return
	}

	recs, err := h.svc.ByActor(c.Request.Context(), name)
	if err != nil {
		h.logger.Error("Error in getting recommendations", interfaces.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "an error occurred while fetching recommendations"})
		return
	}

	c.JSON(http.StatusOK, toResponse(recs))
}

// ByDirector handles GET /recommendations/director.
func (h *RecommendationHandler) ByDirector(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "name is required"})
		return
	}

	recs, err := h.svc.ByDirector(c.Request.Context(), name)
	if err != nil {
		h.logger.Error("Error in getting recommendations", interfaces.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "an error occurred while fetching recommendations"})
		return
	}

	c.JSON(http.StatusOK, toResponse(recs))
}

// toResponse projects engine results to the boundary shape. A nil slice
// still serializes as an empty JSON array.
func toResponse(recs []recommend.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RecommendationResponse{
			Title:       rec.Title,
			ReleaseYear: rec.ReleaseYear,
		})
	}
	return out
}
