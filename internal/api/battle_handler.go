package api

import (
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/service"
)

// BattleService is the part of the service layer the handlers call.
type BattleService interface {
	StartBattle(playerID string, req service.StartRequest) (*service.BattleView, error)
	GetBattle(battleID uint, playerID string) (*service.BattleView, error)
	SubmitAction(battleID uint, playerID string, action game.Action, expectedVersion int) (*service.BattleView, error)
	History(playerID, result string) ([]game.HistoryEntry, error)
	Stats(playerID string) (*service.PlayerStats, error)
}

// CatalogListing is the read-only catalog browsing surface.
type CatalogListing interface {
	Creatures() []game.Creature
	Moves() []game.Move
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	svc     BattleService
	catalog CatalogListing
}

// NewBattleHandler creates a BattleHandler over the service and catalog.
func NewBattleHandler(svc BattleService, catalog CatalogListing) *BattleHandler {
	return &BattleHandler{svc: svc, catalog: catalog}
}
