package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/VytautasPliadis/Recommendation-Engine/pkg/errors"
)

// errorResponse is the error body shape: {"detail": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError maps a typed application error onto an HTTP status.
func writeError(c *gin.Context, err error) {
	var status int
	switch {
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
	case pkgerrors.IsConflict(err):
		status = http.StatusConflict
	case pkgerrors.IsBadRequest(err):
		status = http.StatusBadRequest
	default:
		// Store-level failures stay generic toward the client.
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
		return
	}
	c.JSON(status, errorResponse{Detail: err.Error()})
}
