package engine

import (
	"fmt"
	"sort"

	"github.com/ericogr/creature-battles/internal/game"
)

// sideAction is an action attributed to a side before validation.
type sideAction struct {
	side   game.SideID
	action game.Action
}

// plannedAction is a validated, executable action.
type plannedAction struct {
	side   game.SideID
	action game.Action
	// actor is the roster index that was active when the action was planned.
	actor    int
	move     game.Move
	priority int
	speed    int
}

// collectActions gathers the actions that take part in this resolution,
// asking the policy for AI-controlled sides that did not submit one.
func (tc *turnContext) collectActions(player game.Action, opponent *game.Action, phase Phase) ([]sideAction, error) {
	out := make([]sideAction, 0, 2)
	for _, id := range []game.SideID{game.SidePlayer, game.SideOpponent} {
		side := tc.s.Side(id)
		var act *game.Action
		if id == game.SidePlayer {
			if player.Kind != "" {
				a := player
				act = &a
			}
		} else if opponent != nil && opponent.Kind != "" {
			a := *opponent
			act = &a
		}

		if act != nil && act.Kind == game.ActionForfeit {
			out = append(out, sideAction{side: id, action: *act})
			continue
		}
		mustAct := phase == PhaseOngoing || side.AwaitingSwitch
		if !mustAct {
			continue
		}
		if act == nil {
			if !side.AIControlled {
				return nil, fmt.Errorf("%w: %s side submitted nothing", ErrMissingAction, id)
			}
			a, err := tc.e.policy.Choose(Decision{
				State:      tc.s.Clone(),
				Side:       id,
				MustSwitch: side.AwaitingSwitch,
				Catalog:    tc.e.catalog,
				Rand:       tc.rng,
			})
			if err != nil {
				return nil, invariantf("policy for %s side: %v", id, err)
			}
			act = &a
		}
		out = append(out, sideAction{side: id, action: *act})
	}
	return out, nil
}

// planAction validates one action against the current phase and state.
// It never mutates the state.
func (tc *turnContext) planAction(sa sideAction, m *phaseMachine) (plannedAction, error) {
	side := tc.s.Side(sa.side)
	p := plannedAction{side: sa.side, action: sa.action, actor: side.Active}
	switch sa.action.Kind {
	case game.ActionForfeit:
		if !m.acceptsForfeit() {
			return p, ErrBattleAlreadyOver
		}
		return p, nil

	case game.ActionSwitch:
		if !m.acceptsSwitch() {
			return p, ErrBattleAlreadyOver
		}
		t := sa.action.Target
		switch {
		case t < 0 || t >= len(side.Roster):
			return p, fmt.Errorf("%w: %s target %d out of range", ErrIllegalSwitch, sa.side, t)
		case t == side.Active:
			return p, fmt.Errorf("%w: %s target %d is already active", ErrIllegalSwitch, sa.side, t)
		case side.Roster[t].Fainted():
			return p, fmt.Errorf("%w: %s target %d has fainted", ErrIllegalSwitch, sa.side, t)
		}
		return p, nil

	case game.ActionUseMove:
		if !m.acceptsMove() || side.AwaitingSwitch {
			return p, fmt.Errorf("%w: %s side must switch before using a move", ErrSwitchRequired, sa.side)
		}
		actor := side.ActiveCombatant()
		if actor == nil {
			return p, invariantf("%s side has no active combatant while %s", sa.side, m.current())
		}
		if sa.action.Slot < 0 || sa.action.Slot >= len(actor.Moves) {
			return p, fmt.Errorf("%w: %s slot %d (has %d moves)", ErrInvalidMoveAssignment, sa.side, sa.action.Slot, len(actor.Moves))
		}
		mv, err := tc.e.catalog.Move(actor.Moves[sa.action.Slot])
		if err != nil {
			return p, invariantf("assigned move %d not in catalog: %v", actor.Moves[sa.action.Slot], err)
		}
		p.move = mv
		p.priority = mv.Priority
		p.speed = effectiveSpeed(actor)
		return p, nil
	}
	return p, fmt.Errorf("%w: unknown action kind %q", ErrValidation, sa.action.Kind)
}

// orderPlans sorts switches before moves, then moves by priority and speed.
// Exact ties go to the side named by the tie-break rule.
func (tc *turnContext) orderPlans(plans []plannedAction) {
	favored := game.SidePlayer
	if tc.e.rules.TieBreak == TieBreakOpponent {
		favored = game.SideOpponent
	}
	rank := func(p plannedAction) int {
		if p.action.Kind == game.ActionSwitch {
			return 0
		}
		return 1
	}
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if rank(a) != rank(b) {
			return rank(a) < rank(b)
		}
		if rank(a) == 0 {
			return a.side == game.SidePlayer && b.side != game.SidePlayer
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.speed != b.speed {
			return a.speed > b.speed
		}
		return a.side == favored && b.side != favored
	})
}
