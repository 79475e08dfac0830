package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mixlist/internal/logger"
	"github.com/windoze95/mixlist/internal/service"
	"github.com/windoze95/mixlist/internal/util"
	"go.uber.org/zap"
)

// sessionID reads the session id set by the session middleware and writes a
// 400 response when it is missing.
func sessionID(c *gin.Context) (string, bool) {
	id, err := util.GetSessionIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session"})
		return "", false
	}
	return id, true
}

// respondServiceError maps a widget service error to an HTTP response.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, service.ErrResultNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
	default:
		logger.Get().Error("widget request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
