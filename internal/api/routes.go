package api

import (
	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(r *gin.Engine, h *BattleHandler) {
	api := r.Group(constants.RouteAPIPrefix)
	api.GET(constants.RouteVersion, Version)
	api.GET(constants.RouteCreatures, h.ListCreatures)
	api.GET(constants.RouteMoves, h.ListMoves)

	player := api.Group("")
	player.Use(PlayerRequired())
	player.POST(constants.RouteBattles, h.StartBattle)
	player.GET(constants.RouteBattleByID, h.GetBattle)
	player.POST(constants.RouteBattleAction, h.SubmitAction)
	player.GET(constants.RouteHistory, h.ListHistory)
	player.GET(constants.RouteStats, h.PlayerStats)
}
