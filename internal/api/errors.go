package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/engine"
	"github.com/ericogr/creature-battles/internal/logging"
	"github.com/ericogr/creature-battles/internal/service"
	"github.com/ericogr/creature-battles/internal/storage"
	"github.com/gin-gonic/gin"
)

// writeError maps service and engine errors to HTTP responses. Client
// errors carry the error text; server errors only carry fallback.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
	case errors.Is(err, storage.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleChanged})
	case errors.Is(err, engine.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
	case errors.Is(err, engine.ErrIllegalAction):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, engine.ErrInternalInvariant):
		logging.Error("battle invariant violated", err, logging.Fields{constants.LogFieldPath: c.FullPath(), constants.LogFieldPlayerID: playerID(c)})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrBattleStateCorrupted})
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldPath: c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
