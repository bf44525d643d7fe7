package service

import (
	"math/rand/v2"

	"github.com/ericogr/creature-battles/internal/engine"
	"github.com/ericogr/creature-battles/internal/game"
)

// opponentStream separates the opponent-generation stream from the battle's
// resolution streams, which share the seed.
const opponentStream = 0x6f70706f6e656e74

// GenerateOpponent picks size distinct creatures at level, each with up to
// rules.MaxMoves random learnable moves including at least one damaging move
// when the learnset has one.
func GenerateOpponent(cat Catalog, rules engine.Rules, rng *rand.Rand, size, level int) []game.RosterEntry {
	creatures := cat.Creatures()
	if size > len(creatures) {
		size = len(creatures)
	}
	level = min(max(level, 1), rules.MaxLevel)

	out := make([]game.RosterEntry, 0, size)
	for _, idx := range rng.Perm(len(creatures))[:size] {
		cr := creatures[idx]
		out = append(out, game.RosterEntry{
			CreatureID: cr.ID,
			Level:      level,
			Moves:      pickMoves(cat, cr, rules.MaxMoves, rng),
		})
	}
	return out
}

func pickMoves(cat Catalog, cr game.Creature, limit int, rng *rand.Rand) []int {
	pool := append([]int(nil), cr.Learnset...)
	if len(pool) == 0 {
		// An empty learnset accepts any catalog move.
		for _, mv := range cat.Moves() {
			pool = append(pool, mv.ID)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > limit {
		damaging := func(id int) bool {
			mv, err := cat.Move(id)
			return err == nil && mv.Damaging()
		}
		picked := pool[:limit]
		hasDamage := false
		for _, id := range picked {
			if damaging(id) {
				hasDamage = true
				break
			}
		}
		if !hasDamage {
			for _, id := range pool[limit:] {
				if damaging(id) {
					picked[limit-1] = id
					break
				}
			}
		}
		pool = picked
	}
	return pool
}

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, opponentStream)) }
