package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/creature-battles/internal/config"
	"github.com/ericogr/creature-battles/internal/engine"
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/storage"
)

// MaxTeamSize bounds both the player's team and generated opponents.
const MaxTeamSize = 6

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrNotParticipant = errors.New("player not part of this battle")
	// Both wrap engine.ErrValidation so callers map them like engine input errors.
	ErrInvalidTeam         = fmt.Errorf("%w: invalid team", engine.ErrValidation)
	ErrInvalidResultFilter = fmt.Errorf("%w: invalid result filter", engine.ErrValidation)
)

// Catalog is the reference data the service needs beyond what the engine
// consumes: the full listing, for opponent generation and display.
type Catalog interface {
	engine.Catalog
	Creatures() []game.Creature
	Moves() []game.Move
}

// Service runs battles on top of the engine and the battle store.
type Service struct {
	repo     storage.Repository
	engine   *engine.Engine
	catalog  Catalog
	opponent config.OpponentConfig
	// now is replaceable in tests.
	now func() time.Time
	// seed returns the seed of a new battle.
	seed func() uint64
}

// BattleView is what callers receive for a stored battle. Report describes
// the latest accepted resolution, so reads of a finished battle keep
// JustEnded set for the resolution that ended it.
type BattleView struct {
	ID      uint               `json:"id"`
	Version int                `json:"version"`
	Battle  engine.PublicView  `json:"battle"`
	Report  *engine.TurnReport `json:"report,omitempty"`
}

// New wires a service. opponent controls generated opponents.
func New(repo storage.Repository, eng *engine.Engine, cat Catalog, opponent config.OpponentConfig) *Service {
	return &Service{
		repo:     repo,
		engine:   eng,
		catalog:  cat,
		opponent: opponent,
		now:      func() time.Time { return time.Now().UTC() },
		seed:     randomSeed,
	}
}

func (s *Service) loadOwned(battleID uint, playerID string) (*game.BattleRecord, *game.BattleState, error) {
	rec, err := s.repo.GetBattle(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrBattleNotFound
		}
		return nil, nil, err
	}
	if rec.PlayerID != playerID {
		return nil, nil, ErrNotParticipant
	}
	state, err := game.DecodeSnapshot(rec.Snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: battle %d: %v", engine.ErrInternalInvariant, rec.ID, err)
	}
	return rec, state, nil
}

// GetBattle returns the current view of one of the player's battles.
func (s *Service) GetBattle(battleID uint, playerID string) (*BattleView, error) {
	rec, state, err := s.loadOwned(battleID, playerID)
	if err != nil {
		return nil, err
	}
	rep := engine.Report(state)
	return &BattleView{ID: rec.ID, Version: rec.Version, Battle: engine.Describe(state), Report: &rep}, nil
}

// writeState stores the resolved state under the optimistic version check.
// rec is only updated when the write succeeds.
func (s *Service) writeState(rec *game.BattleRecord, state *game.BattleState) error {
	data, err := game.EncodeSnapshot(state)
	if err != nil {
		return err
	}
	upd := *rec
	upd.Snapshot = data
	upd.Outcome = state.Outcome
	upd.Turn = state.Turn
	if err := s.repo.UpdateBattle(&upd, rec.Version); err != nil {
		return err
	}
	*rec = upd
	return nil
}
