package api

import (
	"net/http"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListHistory returns the caller's archived battles, optionally filtered by
// ?result=win|loss.
func (h *BattleHandler) ListHistory(c *gin.Context) {
	entries, err := h.svc.History(playerID(c), c.Query(constants.QueryResult))
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchHistory)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(entries)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchHistory)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PlayerStats returns the caller's aggregate stats and most used team.
func (h *BattleHandler) PlayerStats(c *gin.Context) {
	stats, err := h.svc.Stats(playerID(c))
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchStats)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(stats)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchStats)
		return
	}
	c.JSON(http.StatusOK, out)
}
