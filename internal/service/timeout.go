package service

import (
	"errors"
	"time"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/logging"
	"github.com/ericogr/creature-battles/internal/storage"
)

// HandleIdleBattle forfeits an abandoned battle on the player's behalf and
// archives it. A battle that moved on since it was found is left alone.
func (s *Service) HandleIdleBattle(rec *game.BattleRecord) error {
	if rec.Outcome.Terminal() {
		return nil
	}
	state, err := game.DecodeSnapshot(rec.Snapshot)
	if err != nil {
		return err
	}
	next, rep, err := s.engine.ResolveTurn(state, game.Forfeit(), nil, nil)
	if err != nil {
		return err
	}
	if err := s.writeState(rec, next); err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			logging.Info("idle battle changed before expiry; skipping", logging.Fields{constants.LogFieldBattleID: rec.ID})
			return nil
		}
		return err
	}
	logging.Info("idle battle forfeited", logging.Fields{constants.LogFieldBattleID: rec.ID, constants.LogFieldPlayerID: rec.PlayerID})
	if rep.JustEnded {
		s.archive(rec, next)
	}
	return nil
}

// ExpireIdleBattles forfeits every ongoing battle idle for longer than
// timeout and returns how many were expired.
func (s *Service) ExpireIdleBattles(timeout time.Duration) (int, error) {
	idle, err := s.repo.FindIdleBattles(s.now().Add(-timeout))
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range idle {
		if err := s.HandleIdleBattle(&idle[i]); err != nil {
			logging.Error("failed to expire idle battle", err, logging.Fields{constants.LogFieldBattleID: idle[i].ID})
			continue
		}
		if idle[i].Outcome.Terminal() {
			n++
		}
	}
	return n, nil
}
