// Package engine resolves creature battles one turn at a time. Every
// operation is a pure function of its inputs: the input state is never
// mutated and all randomness comes from the injected Random.
package engine

import (
	"errors"
	"fmt"

	"github.com/ericogr/creature-battles/internal/game"
)

// Engine binds the reference catalog, rules and AI policy.
type Engine struct {
	catalog Catalog
	rules   Rules
	policy  Policy
}

// New validates the rules and returns an engine. A nil policy selects
// RandomPolicy.
func New(catalog Catalog, rules Rules, policy Policy) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("engine: nil catalog")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if policy == nil {
		policy = RandomPolicy{}
	}
	return &Engine{catalog: catalog, rules: rules, policy: policy}, nil
}

// Rules returns the engine's rule constants.
func (e *Engine) Rules() Rules { return e.rules }

// StartOptions describes the participants of a new battle.
type StartOptions struct {
	PlayerName   string
	OpponentName string
	OpponentAI   bool
	Seed         uint64
}

// StartBattle creates the initial state from two built rosters.
func (e *Engine) StartBattle(player, opponent []game.Combatant, opts StartOptions) (*game.BattleState, error) {
	names := [2]string{opts.PlayerName, opts.OpponentName}
	if names[0] == "" {
		names[0] = "Player"
	}
	if names[1] == "" {
		names[1] = "Opponent"
	}
	s := &game.BattleState{
		Seed:    opts.Seed,
		Turn:    1,
		Outcome: game.OutcomeOngoing,
		Log:     []string{},
	}
	for i, roster := range [][]game.Combatant{player, opponent} {
		id := game.SideID(i)
		side := game.Side{Name: names[i], Active: game.NoActive, AIControlled: id == game.SideOpponent && opts.OpponentAI}
		for j, c := range roster {
			if err := e.checkCombatant(c); err != nil {
				return nil, fmt.Errorf("%s roster slot %d: %w", id, j, err)
			}
			c.Types = append([]string(nil), c.Types...)
			c.Moves = append([]int{}, c.Moves...)
			side.Roster = append(side.Roster, c)
			if side.Active == game.NoActive && !c.Fainted() {
				side.Active = j
			}
		}
		if side.Active == game.NoActive {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRoster, id)
		}
		s.Sides[i] = side
	}

	tc := newTurnContext(e, s, nil)
	tc.add("The battle between %s and %s begins!", names[0], names[1])
	for i := range s.Sides {
		tc.add("%s sent out %s!", s.Sides[i].Name, s.Sides[i].ActiveCombatant().Name)
	}
	return s, nil
}

// checkCombatant validates a caller-supplied combatant.
func (e *Engine) checkCombatant(c game.Combatant) error {
	if c.Level <= 0 || c.Level > e.rules.MaxLevel {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, c.Level)
	}
	if c.Stats.HP <= 0 || c.CurrentHP < 0 || c.CurrentHP > c.Stats.HP {
		return fmt.Errorf("%w: hp %d/%d", ErrValidation, c.CurrentHP, c.Stats.HP)
	}
	if len(c.Moves) > e.rules.MaxMoves {
		return fmt.Errorf("%w: %d moves exceeds limit of %d", ErrInvalidMoveAssignment, len(c.Moves), e.rules.MaxMoves)
	}
	seen := make(map[int]struct{}, len(c.Moves))
	for _, id := range c.Moves {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate move %d", ErrInvalidMoveAssignment, id)
		}
		seen[id] = struct{}{}
		if _, err := e.catalog.Move(id); err != nil {
			return fmt.Errorf("%w: unknown move %d", ErrInvalidMoveAssignment, id)
		}
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, c.Status)
	}
	return nil
}

// ResolveTurn applies one submission to state and returns the next state
// with its report. opponentAction may be nil when the opponent is
// AI-controlled. A nil rng uses SourceFor(state).
//
// On error the input state is returned untouched and nothing else changes.
func (e *Engine) ResolveTurn(state *game.BattleState, playerAction game.Action, opponentAction *game.Action, rng Random) (*game.BattleState, TurnReport, error) {
	if state == nil {
		return nil, TurnReport{}, invariantf("nil battle state")
	}
	if err := e.Validate(state); err != nil {
		return state, TurnReport{}, err
	}
	phase := PhaseOf(state)
	if phase == PhaseTerminal {
		return state, staleReport(state), ErrBattleAlreadyOver
	}
	if rng == nil {
		rng = SourceFor(state)
	}

	s := state.Clone()
	s.Boundary = len(s.Log)
	m := newPhaseMachine(phase)
	tc := newTurnContext(e, s, rng)

	actions, err := tc.collectActions(playerAction, opponentAction, phase)
	if err != nil {
		return state, TurnReport{}, err
	}
	if sa, ok := firstForfeit(actions); ok {
		// A forfeit ends the battle before the other side's action is looked at.
		if _, err := tc.planAction(sa, m); err != nil {
			return state, TurnReport{}, err
		}
		tc.forfeit(sa.side)
	} else {
		plans := make([]plannedAction, 0, len(actions))
		for _, sa := range actions {
			p, err := tc.planAction(sa, m)
			if err != nil {
				return state, TurnReport{}, err
			}
			plans = append(plans, p)
		}
		if phase == PhaseOngoing {
			tc.add("Turn %d", s.Turn)
		}
		tc.orderPlans(plans)
		if err := tc.executePlans(plans); err != nil {
			return state, TurnReport{}, err
		}
		if phase == PhaseOngoing {
			tc.residuals()
		}
	}

	next := PhaseOf(s)
	if err := m.advance(next); err != nil {
		return state, TurnReport{}, err
	}
	if next == PhaseOngoing {
		s.Turn++
	}
	s.Step++
	if next == PhaseTerminal {
		s.FinishedStep = s.Step
	}
	if err := e.Validate(s); err != nil {
		return state, TurnReport{}, err
	}
	return s, Report(s), nil
}

// firstForfeit returns the first forfeiting submission; the player is
// listed first, so a double forfeit counts as the player's.
func firstForfeit(actions []sideAction) (sideAction, bool) {
	for _, sa := range actions {
		if sa.action.Kind == game.ActionForfeit {
			return sa, true
		}
	}
	return sideAction{}, false
}

// staleReport describes a finished battle to a submission that arrived
// after the end: nothing new happened, so nothing just ended.
func staleReport(s *game.BattleState) TurnReport {
	rep := Report(s)
	rep.JustEnded = false
	rep.NewLog = []string{}
	return rep
}
