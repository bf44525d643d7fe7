package engine

import (
	"github.com/ericogr/creature-battles/internal/game"
)

// Validate checks the structural invariants of a battle state. A failure
// means the state was corrupted or reconstructed wrongly; it is reported as
// ErrInternalInvariant and never repaired.
func (e *Engine) Validate(s *game.BattleState) error {
	if s == nil {
		return invariantf("nil battle state")
	}
	if !s.Outcome.Valid() {
		return invariantf("unknown outcome %q", s.Outcome)
	}
	if s.Turn < 1 || s.Step < 0 {
		return invariantf("turn %d / step %d out of range", s.Turn, s.Step)
	}
	if s.Boundary < 0 || s.Boundary > len(s.Log) {
		return invariantf("log boundary %d outside log of %d lines", s.Boundary, len(s.Log))
	}
	if s.FinishedStep < 0 || s.FinishedStep > s.Step {
		return invariantf("finished step %d after step %d", s.FinishedStep, s.Step)
	}
	terminal := s.Outcome.Terminal()
	for i := range s.Sides {
		id := game.SideID(i)
		side := &s.Sides[i]
		if len(side.Roster) == 0 {
			return invariantf("%s side has an empty roster", id)
		}
		for j := range side.Roster {
			c := &side.Roster[j]
			if c.Level <= 0 || c.Stats.HP <= 0 {
				return invariantf("%s combatant %d has level %d / max hp %d", id, j, c.Level, c.Stats.HP)
			}
			if c.CurrentHP < 0 || c.CurrentHP > c.Stats.HP {
				return invariantf("%s combatant %d hp %d outside 0..%d", id, j, c.CurrentHP, c.Stats.HP)
			}
			if len(c.Moves) > e.rules.MaxMoves {
				return invariantf("%s combatant %d has %d moves", id, j, len(c.Moves))
			}
			if !c.Status.Valid() {
				return invariantf("%s combatant %d has unknown status %q", id, j, c.Status)
			}
		}
		if side.Active != game.NoActive && (side.Active < 0 || side.Active >= len(side.Roster)) {
			return invariantf("%s active index %d out of range", id, side.Active)
		}
		if terminal {
			continue
		}
		if side.Living() == 0 {
			return invariantf("%s side has no living combatant but the battle is ongoing", id)
		}
		if side.AwaitingSwitch {
			if side.Active != game.NoActive {
				return invariantf("%s side awaits a switch but has active index %d", id, side.Active)
			}
			continue
		}
		if side.Active == game.NoActive {
			return invariantf("%s side has no active combatant", id)
		}
		if side.Roster[side.Active].Fainted() {
			return invariantf("%s active combatant %d is fainted", id, side.Active)
		}
	}
	return nil
}
