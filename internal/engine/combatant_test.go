package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/ericogr/creature-battles/internal/game"
)

func TestBuildCombatant_ScalesStats(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	c, err := e.BuildCombatant(entry(creatureSwift, nil, moveTackle))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// hp = 50*50/50 + 50 + 10, stat = base*50/50 + 5
	if c.Stats.HP != 110 || c.CurrentHP != 110 || c.Stats.Speed != 95 || c.Stats.Attack != 55 {
		t.Fatalf("unexpected stats %+v hp=%d", c.Stats, c.CurrentHP)
	}
}

func TestScaleStats_MonotonicInLevel(t *testing.T) {
	r := DefaultRules()
	base := game.StatBlock{HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45}
	prev := r.ScaleStats(base, 1)
	for lvl := 2; lvl <= r.MaxLevel; lvl++ {
		cur := r.ScaleStats(base, lvl)
		if cur.HP <= prev.HP || cur.Attack < prev.Attack || cur.Speed < prev.Speed || cur.SpecialDefense < prev.SpecialDefense {
			t.Fatalf("stats decreased from level %d to %d: %+v -> %+v", lvl-1, lvl, prev, cur)
		}
		if cur != r.ScaleStats(base, lvl) {
			t.Fatalf("scaling is not a pure function at level %d", lvl)
		}
		prev = cur
	}
}

func TestBuildCombatant_Errors(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	cases := []struct {
		name  string
		entry game.RosterEntry
		want  error
	}{
		{"zero level", game.RosterEntry{CreatureID: creatureSwift, Level: 0}, ErrInvalidLevel},
		{"level above max", game.RosterEntry{CreatureID: creatureSwift, Level: 101}, ErrInvalidLevel},
		{"unknown creature", game.RosterEntry{CreatureID: 999, Level: 5}, ErrUnknownCreature},
		{"duplicate move", entry(creatureSwift, nil, moveTackle, moveTackle), ErrInvalidMoveAssignment},
		{"unknown move", entry(creatureSwift, nil, 999), ErrInvalidMoveAssignment},
		{"too many moves", entry(creatureSwift, nil, moveTackle, moveQuick, moveEmber, moveRecover, moveShadow), ErrInvalidMoveAssignment},
		{"not in learnset", entry(creatureBlaze, nil, moveShadow), ErrInvalidMoveAssignment},
		{"negative hp", entry(creatureSwift, hp(-1), moveTackle), ErrValidation},
	}
	for _, tc := range cases {
		_, err := e.BuildCombatant(tc.entry)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected a validation error, got %v", tc.name, err)
		}
	}
}

func TestBuildCombatant_ClampsResumedHP(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	c, err := e.BuildCombatant(entry(creatureSwift, hp(5000), moveTackle))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.CurrentHP != c.MaxHP() {
		t.Fatalf("expected hp clamped to %d, got %d", c.MaxHP(), c.CurrentHP)
	}
	c, err = e.BuildCombatant(entry(creatureSwift, hp(7)))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.CurrentHP != 7 || len(c.Moves) != 0 {
		t.Fatalf("expected resumed hp 7 and no moves, got %d %v", c.CurrentHP, c.Moves)
	}
}

func TestBuildRoster_ReportsSlot(t *testing.T) {
	e := newTestEngine(t, DefaultRules())
	_, err := e.BuildRoster([]game.RosterEntry{entry(creatureSwift, nil), {CreatureID: creatureSlow, Level: -3}})
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected invalid level, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "roster slot 1: ") {
		t.Fatalf("expected slot prefix, got %q", err.Error())
	}
}

func TestNew_RejectsBadRules(t *testing.T) {
	r := DefaultRules()
	r.MinRandomFactor = 1.2
	if _, err := New(newFakeCatalog(), r, nil); err == nil {
		t.Fatalf("expected invalid random range to be rejected")
	}
	r = DefaultRules()
	r.TieBreak = "coin"
	if _, err := New(newFakeCatalog(), r, nil); err == nil {
		t.Fatalf("expected unknown tie break to be rejected")
	}
}
