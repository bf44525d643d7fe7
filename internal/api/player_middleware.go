package api

import (
	"net/http"
	"strings"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/gin-gonic/gin"
)

// PlayerRequired reads the caller's identity from the X-Player-ID header
// and injects it into the context. Authentication itself happens upstream.
func PlayerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerID))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
			return
		}
		if len(id) > constants.MaxPlayerIDLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerIDTooLong})
			return
		}
		c.Set(constants.ContextKeyPlayerID, id)
		c.Next()
	}
}

func playerID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyPlayerID)
}
