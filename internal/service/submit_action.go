package service

import (
	"strconv"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/dedupe"
	"github.com/ericogr/creature-battles/internal/engine"
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/keys"
	"github.com/ericogr/creature-battles/internal/logging"
	"github.com/ericogr/creature-battles/internal/storage"
)

// AnyVersion skips the optimistic check against the caller's last read.
const AnyVersion = -1

// SubmitAction resolves one player action against a stored battle and
// persists the result. The opponent is always AI-controlled. When
// expectedVersion is not AnyVersion it must match the stored version.
// Identical concurrent submissions share a single resolution.
func (s *Service) SubmitAction(battleID uint, playerID string, action game.Action, expectedVersion int) (*BattleView, error) {
	index := action.Slot
	if action.Kind == game.ActionSwitch {
		index = action.Target
	}
	key := strconv.Quote(playerID) + "|" + keys.SubmissionKey(battleID, expectedVersion, string(action.Kind), index)
	v, err, shared := dedupe.SubmitGroup.Do(key, func() (interface{}, error) {
		return s.submit(battleID, playerID, action, expectedVersion)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Debug("submission shared with a concurrent request", logging.Fields{constants.LogFieldBattleID: battleID, constants.LogFieldPlayerID: playerID})
	}
	return v.(*BattleView), nil
}

func (s *Service) submit(battleID uint, playerID string, action game.Action, expectedVersion int) (*BattleView, error) {
	rec, state, err := s.loadOwned(battleID, playerID)
	if err != nil {
		return nil, err
	}
	if expectedVersion != AnyVersion && expectedVersion != rec.Version {
		return nil, storage.ErrVersionConflict
	}

	next, rep, err := s.engine.ResolveTurn(state, action, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := s.writeState(rec, next); err != nil {
		return nil, err
	}
	logging.Debug("turn resolved", logging.Fields{
		constants.LogFieldBattleID: rec.ID,
		constants.LogFieldAction:    string(action.Kind),
		constants.LogFieldTurn:      next.Turn,
		constants.LogFieldStep:      next.Step,
		constants.LogFieldOutcome:   string(next.Outcome),
	})
	if rep.JustEnded {
		s.archive(rec, next)
	}
	return &BattleView{ID: rec.ID, Version: rec.Version, Battle: engine.Describe(next), Report: &rep}, nil
}
