package engine

import (
	"testing"

	"github.com/ericogr/creature-battles/internal/game"
)

func TestBaseDamage(t *testing.T) {
	cases := []struct {
		level, power, atk, def, want int
	}{
		{50, 40, 55, 55, 19},
		{50, 120, 55, 55, 54},
		{1, 40, 10, 10, 3},
		{100, 90, 200, 100, 153},
		{10, 40, 10, 0, 50},
	}
	for _, tc := range cases {
		if got := BaseDamage(tc.level, tc.power, tc.atk, tc.def); got != tc.want {
			t.Fatalf("BaseDamage(%d,%d,%d,%d) = %d, want %d", tc.level, tc.power, tc.atk, tc.def, got, tc.want)
		}
	}
}

func TestComputeDamage(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	cat := newFakeCatalog()
	att, _ := e.BuildCombatant(entry(creatureSwift, nil))
	def, _ := e.BuildCombatant(entry(creatureSlow, nil))
	tackle := cat.moves[moveTackle]

	if got := e.computeDamage(&att, &def, tackle, 0, fixedRand{f: 0.5}); got != 0 {
		t.Fatalf("zero effectiveness must deal 0, got %d", got)
	}
	low := e.computeDamage(&att, &def, tackle, 1, fixedRand{f: 0})
	high := e.computeDamage(&att, &def, tackle, 1, fixedRand{f: 1})
	if low != 16 || high != 19 {
		t.Fatalf("expected damage range 16..19, got %d..%d", low, high)
	}
	if got := e.computeDamage(&att, &def, tackle, 2, fixedRand{f: 0}); got != 32 {
		t.Fatalf("expected doubled damage 32, got %d", got)
	}
	if got := e.computeDamage(&att, &def, cat.moves[moveRecover], 1, fixedRand{}); got != 0 {
		t.Fatalf("status move dealt %d", got)
	}

	weak := game.Combatant{Level: 1, Stats: game.StatBlock{Attack: 1}}
	wall := game.Combatant{Stats: game.StatBlock{Defense: 999}}
	if got := e.computeDamage(&weak, &wall, tackle, 0.25, fixedRand{}); got != 1 {
		t.Fatalf("non-immune hit must deal at least 1, got %d", got)
	}
}

func TestBurnHalvesPhysicalAttack(t *testing.T) {
	att := game.Combatant{Stats: game.StatBlock{Attack: 80, SpecialAttack: 60}, Status: game.StatusBurn}
	def := game.Combatant{Stats: game.StatBlock{Defense: 40, SpecialDefense: 30}}
	if a, d := attackStats(&att, &def, game.CategoryPhysical); a != 40 || d != 40 {
		t.Fatalf("physical pair = %d/%d", a, d)
	}
	if a, d := attackStats(&att, &def, game.CategorySpecial); a != 60 || d != 30 {
		t.Fatalf("special pair = %d/%d", a, d)
	}
}

func TestApplyDamageFloorsAtZero(t *testing.T) {
	c := game.Combatant{CurrentHP: 3, Stats: game.StatBlock{HP: 10}}
	if lost := applyDamage(&c, 50); lost != 3 || c.CurrentHP != 0 || !c.Fainted() {
		t.Fatalf("lost=%d hp=%d", lost, c.CurrentHP)
	}
	if lost := applyDamage(&c, 5); lost != 0 || c.CurrentHP != 0 {
		t.Fatalf("damage on a fainted combatant changed hp: lost=%d hp=%d", lost, c.CurrentHP)
	}
}

func TestRollHit(t *testing.T) {
	mv := game.Move{Accuracy: 90}
	if !rollHit(mv, fixedRand{f: 0.89}) {
		t.Fatalf("0.89 should hit a 90%% move")
	}
	if rollHit(mv, fixedRand{f: 0.9}) {
		t.Fatalf("0.90 should miss a 90%% move")
	}
	if !rollHit(game.Move{}, fixedRand{f: 0.999}) {
		t.Fatalf("accuracy 0 never misses")
	}
}
