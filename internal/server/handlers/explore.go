package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// ExploreRequest is the body of the ad-hoc query console.
type ExploreRequest struct {
	Query string `json:"query"`
}

// ExploreHandler runs arbitrary read queries against the store. It is
// an escape hatch with no contract beyond "rows or an empty result on
// any error" - the one place store errors are swallowed.
type ExploreHandler struct {
	db     *gorm.DB
	logger interfaces.Logger
}

// NewExploreHandler creates a new explore handler.
func NewExploreHandler(db *gorm.DB, logger interfaces.Logger) *ExploreHandler {
	return &ExploreHandler{db: db, logger: logger}
}

// Explore handles POST /explore.
func (h *ExploreHandler) Explore(c *gin.Context) {
	var req ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	rows := make([]map[string]interface{}, 0)
	if err := h.db.WithContext(c.Request.Context()).Raw(req.Query).Scan(&rows).Error; err != nil {
		h.logger.Warn("Explore query failed", interfaces.Error(err))
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	c.JSON(http.StatusOK, rows)
}
