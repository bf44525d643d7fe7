package api

import (
	"net/http"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/version"
	"github.com/gin-gonic/gin"
)

// Version reports the build metadata; cmd/healthcheck polls it.
func Version(c *gin.Context) {
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, version.Get())
}
