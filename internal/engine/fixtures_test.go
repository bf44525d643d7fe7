package engine

import (
	"fmt"
	"testing"

	"github.com/ericogr/creature-battles/internal/game"
)

const (
	moveTackle     = 1
	moveQuick      = 2
	moveEmber      = 3
	moveWillOWisp  = 4
	moveRecover    = 5
	moveDoubleEdge = 6
	moveShadow     = 7

	creatureSwift = 1 // normal, base speed 90
	creatureSlow  = 2 // normal, base speed 60
	creatureSpook = 3 // ghost
	creatureBlaze = 4 // fire
)

type fakeCatalog struct {
	creatures map[int]game.Creature
	moves     map[int]game.Move
	chart     map[string]map[string]float64
}

func (c *fakeCatalog) Creature(id int) (game.Creature, error) {
	cr, ok := c.creatures[id]
	if !ok {
		return game.Creature{}, fmt.Errorf("creature %d not found", id)
	}
	return cr, nil
}

func (c *fakeCatalog) Move(id int) (game.Move, error) {
	mv, ok := c.moves[id]
	if !ok {
		return game.Move{}, fmt.Errorf("move %d not found", id)
	}
	return mv, nil
}

func (c *fakeCatalog) TypeEffectiveness(atk string, defs []string) (float64, error) {
	m := 1.0
	for _, d := range defs {
		if v, ok := c.chart[atk][d]; ok {
			m *= v
		}
	}
	return m, nil
}

func newFakeCatalog() *fakeCatalog {
	base := func(speed int) game.StatBlock {
		return game.StatBlock{HP: 50, Attack: 50, Defense: 50, SpecialAttack: 50, SpecialDefense: 50, Speed: speed}
	}
	return &fakeCatalog{
		creatures: map[int]game.Creature{
			creatureSwift: {ID: creatureSwift, Name: "Swift", Base: base(90), Types: []string{"normal"}},
			creatureSlow:  {ID: creatureSlow, Name: "Slow", Base: base(60), Types: []string{"normal"}},
			creatureSpook: {ID: creatureSpook, Name: "Spook", Base: base(50), Types: []string{"ghost"}},
			creatureBlaze: {ID: creatureBlaze, Name: "Blaze", Base: base(60), Types: []string{"fire"}, Learnset: []int{moveEmber, moveTackle}},
		},
		moves: map[int]game.Move{
			moveTackle:     {ID: moveTackle, Name: "Tackle", Type: "normal", Category: game.CategoryPhysical, Power: 40, Accuracy: 100},
			moveQuick:      {ID: moveQuick, Name: "Quick Attack", Type: "normal", Category: game.CategoryPhysical, Power: 40, Accuracy: 100, Priority: 1},
			moveEmber:      {ID: moveEmber, Name: "Ember", Type: "fire", Category: game.CategorySpecial, Power: 40, Accuracy: 100},
			moveWillOWisp:  {ID: moveWillOWisp, Name: "Will-O-Wisp", Type: "fire", Category: game.CategoryStatus, Accuracy: 100, Effect: game.MoveEffect{Status: game.StatusBurn}},
			moveRecover:    {ID: moveRecover, Name: "Recover", Type: "normal", Category: game.CategoryStatus, Effect: game.MoveEffect{HealPercent: 50}},
			moveDoubleEdge: {ID: moveDoubleEdge, Name: "Double-Edge", Type: "normal", Category: game.CategoryPhysical, Power: 120, Accuracy: 100, Effect: game.MoveEffect{RecoilPercent: 33}},
			moveShadow:     {ID: moveShadow, Name: "Shadow Ball", Type: "ghost", Category: game.CategorySpecial, Power: 80, Accuracy: 100},
		},
		chart: map[string]map[string]float64{
			"normal": {"ghost": 0},
			"ghost":  {"normal": 0, "ghost": 2},
			"fire":   {"fire": 0.5},
		},
	}
}

// fixedRand always hits and always rolls the minimum random factor.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return 0 }

func newTestEngine(t *testing.T, rules Rules) *Engine {
	t.Helper()
	e, err := New(newFakeCatalog(), rules, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func hp(v int) *int { return &v }

func entry(creature int, hpLeft *int, moves ...int) game.RosterEntry {
	return game.RosterEntry{CreatureID: creature, Level: 50, Moves: moves, CurrentHP: hpLeft}
}

func mustRoster(t *testing.T, e *Engine, entries ...game.RosterEntry) []game.Combatant {
	t.Helper()
	r, err := e.BuildRoster(entries)
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	return r
}

func mustStart(t *testing.T, e *Engine, player, opponent []game.Combatant) *game.BattleState {
	t.Helper()
	s, err := e.StartBattle(player, opponent, StartOptions{PlayerName: "Player", OpponentName: "Opponent", Seed: 42})
	if err != nil {
		t.Fatalf("start battle: %v", err)
	}
	return s
}

func logIndex(log []string, line string) int {
	for i, l := range log {
		if l == line {
			return i
		}
	}
	return -1
}

func opp(a game.Action) *game.Action { return &a }
