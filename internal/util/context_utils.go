package util

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// SessionContextKey is the gin context key holding the session id.
const SessionContextKey = "session_id"

// GetSessionIDFromContext gets the session ID from the context.
func GetSessionIDFromContext(c *gin.Context) (string, error) {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return "", errors.New("no session information")
	}

	sessionID, ok := val.(string)
	if !ok || sessionID == "" {
		return "", errors.New("session information is of the wrong type")
	}

	return sessionID, nil
}
