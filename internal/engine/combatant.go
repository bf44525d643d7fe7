package engine

import (
	"fmt"

	"github.com/ericogr/creature-battles/internal/game"
)

// ScaleStats applies the level formula to a base stat block. It is a pure
// function of (base, level) and monotonic in level.
func (r Rules) ScaleStats(base game.StatBlock, level int) game.StatBlock {
	stat := func(b int) int { return b*level/r.LevelDivisor + r.StatBonus }
	return game.StatBlock{
		HP:             base.HP*level/r.LevelDivisor + level + r.HPBonus,
		Attack:         stat(base.Attack),
		Defense:        stat(base.Defense),
		SpecialAttack:  stat(base.SpecialAttack),
		SpecialDefense: stat(base.SpecialDefense),
		Speed:          stat(base.Speed),
	}
}

// BuildCombatant binds a roster entry to its catalog template.
func (e *Engine) BuildCombatant(entry game.RosterEntry) (game.Combatant, error) {
	if entry.Level <= 0 || entry.Level > e.rules.MaxLevel {
		return game.Combatant{}, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidLevel, entry.Level, e.rules.MaxLevel)
	}
	tpl, err := e.catalog.Creature(entry.CreatureID)
	if err != nil {
		return game.Combatant{}, fmt.Errorf("%w: %d", ErrUnknownCreature, entry.CreatureID)
	}
	if len(entry.Moves) > e.rules.MaxMoves {
		return game.Combatant{}, fmt.Errorf("%w: %d moves exceeds limit of %d", ErrInvalidMoveAssignment, len(entry.Moves), e.rules.MaxMoves)
	}
	seen := make(map[int]struct{}, len(entry.Moves))
	for _, id := range entry.Moves {
		if _, dup := seen[id]; dup {
			return game.Combatant{}, fmt.Errorf("%w: duplicate move %d", ErrInvalidMoveAssignment, id)
		}
		seen[id] = struct{}{}
		if _, err := e.catalog.Move(id); err != nil {
			return game.Combatant{}, fmt.Errorf("%w: unknown move %d", ErrInvalidMoveAssignment, id)
		}
		if !tpl.CanLearn(id) {
			return game.Combatant{}, fmt.Errorf("%w: %s cannot learn move %d", ErrInvalidMoveAssignment, tpl.Name, id)
		}
	}

	stats := e.rules.ScaleStats(tpl.Base, entry.Level)
	hp := stats.HP
	if entry.CurrentHP != nil {
		if *entry.CurrentHP < 0 {
			return game.Combatant{}, fmt.Errorf("%w: negative current hp %d", ErrValidation, *entry.CurrentHP)
		}
		hp = min(*entry.CurrentHP, stats.HP)
	}
	return game.Combatant{
		CreatureID: tpl.ID,
		Name:       tpl.Name,
		Types:      append([]string(nil), tpl.Types...),
		Level:      entry.Level,
		Stats:      stats,
		CurrentHP:  hp,
		Moves:      append([]int{}, entry.Moves...),
	}, nil
}

// BuildRoster builds every entry in order, failing on the first bad one.
func (e *Engine) BuildRoster(entries []game.RosterEntry) ([]game.Combatant, error) {
	out := make([]game.Combatant, 0, len(entries))
	for i, entry := range entries {
		c, err := e.BuildCombatant(entry)
		if err != nil {
			return nil, fmt.Errorf("roster slot %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
