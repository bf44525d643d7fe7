package engine

import (
	"slices"

	"github.com/ericogr/creature-battles/internal/game"
)

var statusImmunities = map[game.StatusCondition][]string{
	game.StatusBurn:      {"fire"},
	game.StatusPoison:    {"poison", "steel"},
	game.StatusParalysis: {"electric"},
}

var statusVerb = map[game.StatusCondition]string{
	game.StatusBurn:      "was burned",
	game.StatusPoison:    "was poisoned",
	game.StatusParalysis: "is paralyzed",
}

func immuneTo(status game.StatusCondition, types []string) bool {
	for _, t := range statusImmunities[status] {
		if slices.Contains(types, t) {
			return true
		}
	}
	return false
}

// applyStatus inflicts the move's declared status on the target.
func (tc *turnContext) applyStatus(id game.SideID, target *game.Combatant, move game.Move) {
	st := move.Effect.Status
	if st == game.StatusNone || target.Fainted() {
		return
	}
	if target.Status != game.StatusNone || immuneTo(st, target.Types) {
		if !move.Damaging() {
			tc.add("But it failed!")
		}
		return
	}
	if chance := move.Effect.StatusChance; chance > 0 && chance < 100 {
		if tc.rng.IntN(100) >= chance {
			return
		}
	}
	target.Status = st
	tc.add("%s %s!", tc.label(id, target), statusVerb[st])
}

func (tc *turnContext) applyHeal(id game.SideID, c *game.Combatant, move game.Move) {
	pct := move.Effect.HealPercent
	if pct <= 0 || c.Fainted() {
		return
	}
	if c.CurrentHP == c.MaxHP() {
		tc.add("%s's HP is already full.", tc.label(id, c))
		return
	}
	amount := max(1, c.MaxHP()*pct/100)
	gained := min(amount, c.MaxHP()-c.CurrentHP)
	c.CurrentHP += gained
	tc.add("%s restored %d HP (%d/%d HP).", tc.label(id, c), gained, c.CurrentHP, c.MaxHP())
}

func (tc *turnContext) applyRecoil(id game.SideID, c *game.Combatant, move game.Move, dealt int) {
	pct := move.Effect.RecoilPercent
	if pct <= 0 || dealt <= 0 || c.Fainted() {
		return
	}
	lost := applyDamage(c, max(1, dealt*pct/100))
	tc.add("%s is hurt by recoil (%d damage).", tc.label(id, c), lost)
}

// residuals applies end-of-turn status damage, player side first.
func (tc *turnContext) residuals() {
	for _, id := range []game.SideID{game.SidePlayer, game.SideOpponent} {
		if tc.terminal() {
			return
		}
		c := tc.s.Side(id).ActiveCombatant()
		if c == nil || c.Fainted() {
			continue
		}
		var divisor int
		switch c.Status {
		case game.StatusBurn:
			divisor = 16
		case game.StatusPoison:
			divisor = 8
		default:
			continue
		}
		lost := applyDamage(c, max(1, c.MaxHP()/divisor))
		tc.add("%s is hurt by its %s (%d damage).", tc.label(id, c), c.Status, lost)
		tc.checkFaint(id)
	}
}
