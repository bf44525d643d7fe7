package engine

import (
	"fmt"

	"github.com/ericogr/creature-battles/internal/game"
)

// turnContext carries the working copy of the state through one resolution.
type turnContext struct {
	e   *Engine
	s   *game.BattleState
	rng Random
}

func newTurnContext(e *Engine, s *game.BattleState, rng Random) *turnContext {
	return &turnContext{e: e, s: s, rng: rng}
}

func (tc *turnContext) add(format string, args ...any) {
	tc.s.Log = append(tc.s.Log, fmt.Sprintf(format, args...))
}

// label names a combatant together with its owner for narration.
func (tc *turnContext) label(id game.SideID, c *game.Combatant) string {
	return tc.s.Side(id).Name + "'s " + c.Name
}

func (tc *turnContext) terminal() bool { return tc.s.Outcome.Terminal() }
