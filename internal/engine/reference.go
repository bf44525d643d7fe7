package engine

import "github.com/ericogr/creature-battles/internal/game"

// Catalog is the read-only reference data the engine consumes. The engine
// never mutates what it returns.
type Catalog interface {
	Creature(id int) (game.Creature, error)
	Move(id int) (game.Move, error)
	TypeEffectiveness(attackType string, defendTypes []string) (float64, error)
}
