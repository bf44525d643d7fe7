package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func sampleState() *BattleState {
	return &BattleState{
		Seed: 42,
		Turn: 3,
		Step: 4,
		Sides: [2]Side{
			{Name: "Ash", Active: 0, Roster: []Combatant{{CreatureID: 4, Name: "Charmander", Types: []string{"fire"}, Level: 20, Stats: StatBlock{HP: 50}, CurrentHP: 31, Moves: []int{2, 4}, Status: StatusBurn}}},
			{Name: "Rival", Active: NoActive, AwaitingSwitch: true, AIControlled: true, Roster: []Combatant{
				{CreatureID: 7, Name: "Squirtle", Types: []string{"water"}, Level: 20, Stats: StatBlock{HP: 52}, CurrentHP: 0, Moves: []int{1}},
				{CreatureID: 25, Name: "Pikachu", Types: []string{"electric"}, Level: 20, Stats: StatBlock{HP: 45}, CurrentHP: 45, Moves: []int{3}},
			}},
		},
		Log:      []string{"a", "b"},
		Outcome:  OutcomeOngoing,
		Boundary: 1,
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := sampleState()
	data, err := EncodeSnapshot(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	again, _ := EncodeSnapshot(out)
	if string(again) != string(data) {
		t.Fatalf("snapshot not stable:\n%s\n%s", data, again)
	}
	if out.Sides[1].Active != NoActive || !out.Sides[1].AwaitingSwitch || out.Sides[0].Roster[0].Status != StatusBurn {
		t.Fatalf("fields lost in round trip: %+v", out)
	}
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"schema_version":99}`)); !errors.Is(err, ErrUnsupportedSnapshot) {
		t.Fatalf("expected ErrUnsupportedSnapshot, got %v", err)
	}
	if _, err := DecodeSnapshot([]byte(`not json`)); err == nil {
		t.Fatalf("expected a decode error")
	}
	out, err := DecodeSnapshot([]byte(`{"schema_version":1,"turn":1}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Log == nil {
		t.Fatalf("missing log should decode as empty")
	}
	if _, err := EncodeSnapshot(nil); err == nil {
		t.Fatalf("expected error for nil state")
	}
}

func TestClone_DeepCopies(t *testing.T) {
	in := sampleState()
	c := in.Clone()
	c.Log = append(c.Log, "c")
	c.Log[0] = "changed"
	c.Sides[0].Roster[0].CurrentHP = 1
	c.Sides[0].Roster[0].Moves[0] = 99
	c.Sides[0].Roster[0].Types[0] = "water"
	c.Sides[1].Active = 1

	orig := in.Sides[0].Roster[0]
	if in.Log[0] != "a" || len(in.Log) != 2 || orig.CurrentHP != 31 || orig.Moves[0] != 2 || orig.Types[0] != "fire" || in.Sides[1].Active != NoActive {
		t.Fatalf("clone aliases the original: %+v", in)
	}
}

func TestSideHelpers(t *testing.T) {
	s := sampleState().Sides[1]
	if s.ActiveCombatant() != nil {
		t.Fatalf("expected no active combatant")
	}
	if s.Living() != 1 {
		t.Fatalf("expected one living combatant, got %d", s.Living())
	}
	if got := s.SwitchTargets(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("unexpected switch targets %v", got)
	}
}

func TestSideIDText(t *testing.T) {
	b, err := json.Marshal(map[string]SideID{"w": SideOpponent})
	if err != nil || string(b) != `{"w":"opponent"}` {
		t.Fatalf("marshal: %s %v", b, err)
	}
	var m map[string]SideID
	if err := json.Unmarshal([]byte(`{"a":"player","b":"none"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["a"] != SidePlayer || m["b"] != SideNone {
		t.Fatalf("unexpected sides %v", m)
	}
	var s SideID
	if err := s.UnmarshalText([]byte("referee")); err == nil {
		t.Fatalf("expected error for unknown side")
	}
	if SidePlayer.Other() != SideOpponent || SideOpponent.Other() != SidePlayer {
		t.Fatalf("Other is not symmetric")
	}
}

func TestOutcomeWinner(t *testing.T) {
	cases := map[Outcome]SideID{
		OutcomeOngoing:           SideNone,
		OutcomePlayerWon:         SidePlayer,
		OutcomeOpponentWon:       SideOpponent,
		OutcomePlayerForfeited:   SideOpponent,
		OutcomeOpponentForfeited: SidePlayer,
	}
	for o, want := range cases {
		if got := o.Winner(); got != want {
			t.Fatalf("%s: expected winner %s, got %s", o, want, got)
		}
		if o.Terminal() == (o == OutcomeOngoing) {
			t.Fatalf("%s: wrong Terminal()", o)
		}
	}
	if WonBy(SideOpponent) != OutcomeOpponentWon || ForfeitedBy(SidePlayer) != OutcomePlayerForfeited {
		t.Fatalf("outcome constructors mismatch")
	}
	if Outcome("draw").Valid() {
		t.Fatalf("draw must not be valid")
	}
}

func TestCreatureCanLearn(t *testing.T) {
	open := Creature{}
	if !open.CanLearn(7) {
		t.Fatalf("empty learnset should accept any move")
	}
	c := Creature{Learnset: []int{1, 2}}
	if !c.CanLearn(2) || c.CanLearn(3) {
		t.Fatalf("learnset not honoured")
	}
}
