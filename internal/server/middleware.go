package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// RequestLogger logs every request with a generated request id.
func RequestLogger(logger interfaces.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		logger.Info("Request handled",
			interfaces.String("request_id", requestID),
			interfaces.String("method", c.Request.Method),
			interfaces.String("path", c.Request.URL.Path),
			interfaces.Int("status", c.Writer.Status()),
			interfaces.Any("duration", time.Since(start).String()))
	}
}
