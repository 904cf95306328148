package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/repository"
	"github.com/VytautasPliadis/Recommendation-Engine/internal/catalog/service"
)

// CreatePersonRequest is the body for actor and director creation.
type CreatePersonRequest struct {
	Name string `json:"name" binding:"required"`
}

// AssociateRequest is the body for the association endpoints.
type AssociateRequest struct {
	ActorID    int    `json:"actor_id"`
	DirectorID int    `json:"director_id"`
	MediaID    string `json:"media_id" binding:"required"`
}

// CatalogHandler serves the CRUD and association endpoints.
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateActor handles POST /actors/.
func (h *CatalogHandler) CreateActor(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "name is required"})
		return
	}

	actor, err := h.svc.CreateActor(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, actor)
}

// GetActor handles GET /actors/:name.
func (h *CatalogHandler) GetActor(c *gin.Context) {
	actor, err := h.svc.GetActor(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, actor)
}

// CreateDirector handles POST /directors/.
func (h *CatalogHandler) CreateDirector(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "name is required"})
		return
	}

	director, err := h.svc.CreateDirector(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, director)
}

// GetDirector handles GET /directors/:name.
func (h *CatalogHandler) GetDirector(c *gin.Context) {
	director, err := h.svc.GetDirector(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, director)
}

// CreateMedia handles POST /media/.
func (h *CatalogHandler) CreateMedia(c *gin.Context) {
	var media repository.Media
	if err := c.ShouldBindJSON(&media); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid media body"})
		return
	}

	created, err := h.svc.CreateMedia(c.Request.Context(), &media)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMedia handles GET /media/:title.
func (h *CatalogHandler) GetMedia(c *gin.Context) {
	media, err := h.svc.GetMedia(c.Request.Context(), c.Param("title"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// AssociateActorWithMedia handles POST /associate-actor-with-media/.
func (h *CatalogHandler) AssociateActorWithMedia(c *gin.Context) {
	var req AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActorID == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "actor_id and media_id are required"})
		return
	}

	if err := h.svc.AssociateActorWithMedia(c.Request.Context(), req.ActorID, req.MediaID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Actor associated with media successfully"})
}

// AssociateDirectorWithMedia handles POST /associate-director-with-media/.
func (h *CatalogHandler) AssociateDirectorWithMedia(c *gin.Context) {
	var req AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DirectorID == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "director_id and media_id are required"})
		return
	}

	if err := h.svc.AssociateDirectorWithMedia(c.Request.Context(), req.DirectorID, req.MediaID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Director associated with media successfully"})
}
