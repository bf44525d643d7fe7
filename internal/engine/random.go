package engine

import (
	"math/rand/v2"

	"github.com/ericogr/creature-battles/internal/game"
)

// Random is the single source of randomness used during resolution.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// SourceFor derives a reproducible random source for the next resolution of
// state. Replaying the same snapshot with the same actions yields the same
// result.
func SourceFor(state *game.BattleState) *rand.Rand {
	return rand.New(rand.NewPCG(state.Seed, uint64(state.Step)))
}
