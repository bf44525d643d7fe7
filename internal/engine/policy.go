package engine

import (
	"fmt"
	"sort"

	"github.com/ericogr/creature-battles/internal/game"
)

// Decision is everything a policy may look at when choosing an action for
// an AI-controlled side. State is a private copy.
type Decision struct {
	State      *game.BattleState
	Side       game.SideID
	MustSwitch bool
	Catalog    Catalog
	Rand       Random
}

// Policy chooses actions for AI-controlled sides. Implementations must draw
// randomness only from Decision.Rand so resolution stays replayable.
type Policy interface {
	Choose(d Decision) (game.Action, error)
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(d Decision) (game.Action, error)

func (f PolicyFunc) Choose(d Decision) (game.Action, error) { return f(d) }

const (
	PolicyRandom = "random"
	PolicyGreedy = "greedy"
)

// PolicyByName returns a built-in policy. An empty name selects random.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PolicyRandom:
		return RandomPolicy{}, nil
	case PolicyGreedy:
		return GreedyPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown ai policy %q", name)
}

// RandomPolicy picks a uniformly random legal action: a random move slot
// normally, a random living reserve when a switch is required.
type RandomPolicy struct{}

func (RandomPolicy) Choose(d Decision) (game.Action, error) {
	side := d.State.Side(d.Side)
	targets := side.SwitchTargets()
	if d.MustSwitch {
		if len(targets) == 0 {
			return game.Action{}, fmt.Errorf("%s side must switch but has no reserve", d.Side)
		}
		return game.Switch(targets[d.Rand.IntN(len(targets))]), nil
	}
	if c := side.ActiveCombatant(); c != nil && len(c.Moves) > 0 {
		return game.UseMove(d.Rand.IntN(len(c.Moves))), nil
	}
	if len(targets) > 0 {
		return game.Switch(targets[d.Rand.IntN(len(targets))]), nil
	}
	return game.Forfeit(), nil
}

// GreedyPolicy scores every usable move against the opposing active
// combatant and picks the best. Forced switches send out the reserve with
// the strongest move against the foe.
type GreedyPolicy struct{}

func (g GreedyPolicy) Choose(d Decision) (game.Action, error) {
	side := d.State.Side(d.Side)
	foe := d.State.Side(d.Side.Other()).ActiveCombatant()
	targets := side.SwitchTargets()
	if d.MustSwitch {
		if len(targets) == 0 {
			return game.Action{}, fmt.Errorf("%s side must switch but has no reserve", d.Side)
		}
		return game.Switch(g.bestReserve(d, side, targets, foe)), nil
	}

	c := side.ActiveCombatant()
	if c == nil || len(c.Moves) == 0 {
		if len(targets) > 0 {
			return game.Switch(g.bestReserve(d, side, targets, foe)), nil
		}
		return game.Forfeit(), nil
	}

	best, bestScore := -1, -1.0
	for slot, id := range c.Moves {
		mv, err := d.Catalog.Move(id)
		if err != nil {
			return game.Action{}, err
		}
		score := scoreMove(d.Catalog, c, foe, mv)
		if score > bestScore {
			best, bestScore = slot, score
		}
	}
	// Nothing useful to do: let a random slot keep play going.
	if bestScore <= 0 {
		best = d.Rand.IntN(len(c.Moves))
	}
	return game.UseMove(best), nil
}

// bestReserve ranks reserves by their best move score against foe, keeping
// roster order among equals.
func (GreedyPolicy) bestReserve(d Decision, side *game.Side, targets []int, foe *game.Combatant) int {
	type ranked struct {
		index int
		score float64
	}
	rs := make([]ranked, 0, len(targets))
	for _, t := range targets {
		c := &side.Roster[t]
		top := 0.0
		for _, id := range c.Moves {
			mv, err := d.Catalog.Move(id)
			if err != nil {
				continue
			}
			top = max(top, scoreMove(d.Catalog, c, foe, mv))
		}
		rs = append(rs, ranked{index: t, score: top})
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].score > rs[j].score })
	return rs[0].index
}

// scoreMove estimates how useful mv is for c against foe.
func scoreMove(cat Catalog, c, foe *game.Combatant, mv game.Move) float64 {
	hitChance := 1.0
	if mv.Accuracy > 0 {
		hitChance = float64(mv.Accuracy) / 100
	}
	if mv.Effect.HealPercent > 0 && !mv.Damaging() {
		if c.CurrentHP*2 < c.MaxHP() {
			return float64(mv.Effect.HealPercent) * hitChance
		}
		return 0
	}
	if foe == nil || foe.Fainted() {
		return 0
	}
	eff, err := cat.TypeEffectiveness(mv.Type, foe.Types)
	if err != nil || eff == 0 {
		return 0
	}
	if !mv.Damaging() {
		if mv.Effect.Status == game.StatusNone || foe.Status != game.StatusNone || immuneTo(mv.Effect.Status, foe.Types) {
			return 0
		}
		return 35 * hitChance
	}
	a, df := attackStats(c, foe, mv.Category)
	return float64(BaseDamage(c.Level, mv.Power, a, df)) * eff * hitChance
}
