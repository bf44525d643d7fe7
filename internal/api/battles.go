package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/service"
	"github.com/gin-gonic/gin"
)

// ActionRequest is the body of a battle action submission.
type ActionRequest struct {
	Action game.ActionKind `json:"action" binding:"required"`
	Slot   int             `json:"slot"`
	Target int             `json:"target"`
	// Version is the battle version the client last saw; omit to skip the check.
	Version *int `json:"version"`
}

func parseBattleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(constants.ParamBattleID), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return 0, false
	}
	return uint(id), true
}

// StartBattle creates a battle for the caller against a generated opponent.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req service.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.svc.StartBattle(playerID(c), req)
	if err != nil {
		writeError(c, err, constants.ErrFailedStartBattle)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GetBattle returns the public view of one of the caller's battles.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := parseBattleID(c)
	if !ok {
		return
	}
	v, err := h.svc.GetBattle(id, playerID(c))
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchBattle)
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, v)
}

// SubmitAction resolves the caller's action for the current turn.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id, ok := parseBattleID(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	version := service.AnyVersion
	if req.Version != nil {
		version = *req.Version
	}
	action := game.Action{Kind: req.Action, Slot: req.Slot, Target: req.Target}
	v, err := h.svc.SubmitAction(id, playerID(c), action, version)
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	c.JSON(http.StatusOK, v)
}
