package engine

import (
	"github.com/ericogr/creature-battles/internal/game"
)

// executePlans runs the ordered plans, stopping as soon as the battle ends.
func (tc *turnContext) executePlans(plans []plannedAction) error {
	for _, p := range plans {
		if tc.terminal() {
			return nil
		}
		switch p.action.Kind {
		case game.ActionSwitch:
			tc.execSwitch(p)
		case game.ActionUseMove:
			if err := tc.execMove(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tc *turnContext) execSwitch(p plannedAction) {
	side := tc.s.Side(p.side)
	if prev := side.ActiveCombatant(); prev != nil {
		tc.add("%s withdrew %s.", side.Name, prev.Name)
	}
	side.Active = p.action.Target
	side.AwaitingSwitch = false
	tc.add("%s sent out %s!", side.Name, side.Roster[p.action.Target].Name)
}

func (tc *turnContext) execMove(p plannedAction) error {
	side := tc.s.Side(p.side)
	foeID := p.side.Other()
	actor := &side.Roster[p.actor]
	// The actor may have been knocked out before its turn came up.
	if side.Active != p.actor || actor.Fainted() {
		return nil
	}
	tc.add("%s used %s!", tc.label(p.side, actor), p.move.Name)

	selfOnly := !p.move.Damaging() && p.move.Effect.Status == game.StatusNone
	target := tc.s.Side(foeID).ActiveCombatant()
	if !selfOnly && (target == nil || target.Fainted()) {
		tc.add("But there was no target...")
		return nil
	}
	if !rollHit(p.move, tc.rng) {
		tc.add("%s's attack missed!", tc.label(p.side, actor))
		return nil
	}
	if selfOnly {
		tc.applyHeal(p.side, actor, p.move)
		return nil
	}

	eff, err := tc.e.effectiveness(p.move, target)
	if err != nil {
		return err
	}
	if eff == 0 {
		tc.add("It doesn't affect %s...", tc.label(foeID, target))
		return nil
	}

	dealt := 0
	if p.move.Damaging() {
		dmg := tc.e.computeDamage(actor, target, p.move, eff, tc.rng)
		dealt = applyDamage(target, dmg)
		switch {
		case eff > 1:
			tc.add("It's super effective!")
		case eff < 1:
			tc.add("It's not very effective...")
		}
		tc.add("%s took %d damage (%d/%d HP).", tc.label(foeID, target), dealt, target.CurrentHP, target.MaxHP())
	}

	tc.applyStatus(foeID, target, p.move)
	tc.applyHeal(p.side, actor, p.move)
	tc.applyRecoil(p.side, actor, p.move, dealt)

	// The target is checked first: if both sides run out in the same
	// action, the side that fell first loses.
	tc.checkFaint(foeID)
	tc.checkFaint(p.side)
	return nil
}

// checkFaint handles the active combatant of a side reaching zero HP.
func (tc *turnContext) checkFaint(id game.SideID) {
	side := tc.s.Side(id)
	c := side.ActiveCombatant()
	if c == nil || !c.Fainted() {
		return
	}
	tc.add("%s fainted!", tc.label(id, c))
	side.Active = game.NoActive
	if side.Living() > 0 {
		side.AwaitingSwitch = true
		return
	}
	side.AwaitingSwitch = false
	if !tc.terminal() {
		tc.finish(game.WonBy(id.Other()))
		tc.add("%s has no creatures left. %s wins the battle!", side.Name, tc.s.Side(id.Other()).Name)
	}
}

// finish records a terminal outcome and clears pending switch requirements.
func (tc *turnContext) finish(o game.Outcome) {
	tc.s.Outcome = o
	for i := range tc.s.Sides {
		tc.s.Sides[i].AwaitingSwitch = false
	}
}

func (tc *turnContext) forfeit(id game.SideID) {
	tc.finish(game.ForfeitedBy(id))
	tc.add("%s forfeited the battle. %s wins!", tc.s.Side(id).Name, tc.s.Side(id.Other()).Name)
}
