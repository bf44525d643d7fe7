package engine

import (
	"math"

	"github.com/ericogr/creature-battles/internal/game"
)

// BaseDamage is the level/power/stat part of the damage formula, before the
// type multiplier and random factor:
//
//	floor(floor((floor(2*level/5)+2) * power * atk / def) / 50) + 2
func BaseDamage(level, power, atk, def int) int {
	if def < 1 {
		def = 1
	}
	if atk < 0 {
		atk = 0
	}
	return ((2*level/5+2)*power*atk/def)/50 + 2
}

// attackStats picks the attack/defense pair for the move category.
func attackStats(att, def *game.Combatant, cat game.MoveCategory) (int, int) {
	if cat == game.CategorySpecial {
		return att.Stats.SpecialAttack, def.Stats.SpecialDefense
	}
	a := att.Stats.Attack
	if att.Status == game.StatusBurn {
		a /= 2
	}
	return a, def.Stats.Defense
}

// effectiveSpeed is the speed used for turn ordering.
func effectiveSpeed(c *game.Combatant) int {
	if c.Status == game.StatusParalysis {
		return c.Stats.Speed / 2
	}
	return c.Stats.Speed
}

// rollHit performs the accuracy check. Accuracy 0 never misses.
func rollHit(move game.Move, rng Random) bool {
	if move.Accuracy <= 0 {
		return true
	}
	return rng.Float64()*100 < float64(move.Accuracy)
}

// effectiveness resolves the type multiplier of move against def.
func (e *Engine) effectiveness(move game.Move, def *game.Combatant) (float64, error) {
	eff, err := e.catalog.TypeEffectiveness(move.Type, def.Types)
	if err != nil {
		return 0, invariantf("type effectiveness for %s against %v: %v", move.Type, def.Types, err)
	}
	return eff, nil
}

// computeDamage returns the final damage of a damaging move that hit.
// A zero multiplier always yields zero; any other multiplier yields at
// least one point.
func (e *Engine) computeDamage(att, def *game.Combatant, move game.Move, eff float64, rng Random) int {
	if !move.Damaging() || eff == 0 {
		return 0
	}
	a, d := attackStats(att, def, move.Category)
	base := BaseDamage(att.Level, move.Power, a, d)
	rf := e.rules.MinRandomFactor + rng.Float64()*(e.rules.MaxRandomFactor-e.rules.MinRandomFactor)
	dmg := int(math.Floor(float64(base) * eff * rf))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// applyDamage lowers HP, never below zero, and returns the HP actually lost.
func applyDamage(c *game.Combatant, dmg int) int {
	if dmg <= 0 {
		return 0
	}
	lost := min(dmg, c.CurrentHP)
	c.CurrentHP -= lost
	return lost
}
