package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCreatures returns every creature in the reference catalog.
func (h *BattleHandler) ListCreatures(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Creatures())
}

// ListMoves returns every move in the reference catalog.
func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Moves())
}
