package game

import "fmt"

// StatBlock groups the six battle stats. For combatants HP is the max HP.
type StatBlock struct {
	HP             int `json:"hp" yaml:"hp"`
	Attack         int `json:"attack" yaml:"attack"`
	Defense        int `json:"defense" yaml:"defense"`
	SpecialAttack  int `json:"special_attack" yaml:"special_attack"`
	SpecialDefense int `json:"special_defense" yaml:"special_defense"`
	Speed          int `json:"speed" yaml:"speed"`
}

// Creature is an immutable template from the reference catalog.
type Creature struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Base  StatBlock `json:"base"`
	Types []string  `json:"types"`
	// Learnset lists the move IDs this creature may be assigned. An empty
	// learnset accepts any catalog move.
	Learnset []int `json:"learnset"`
}

// CanLearn reports whether moveID may be assigned to the creature.
func (c Creature) CanLearn(moveID int) bool {
	if len(c.Learnset) == 0 {
		return true
	}
	for _, id := range c.Learnset {
		if id == moveID {
			return true
		}
	}
	return false
}

// MoveCategory selects which attack/defense pair a move uses.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// Valid reports whether the category is one of the known values.
func (c MoveCategory) Valid() bool {
	switch c {
	case CategoryPhysical, CategorySpecial, CategoryStatus:
		return true
	}
	return false
}

// StatusCondition is a persistent non-volatile condition on a combatant.
type StatusCondition string

const (
	StatusNone      StatusCondition = ""
	StatusBurn      StatusCondition = "burn"
	StatusPoison    StatusCondition = "poison"
	StatusParalysis StatusCondition = "paralysis"
)

// Valid reports whether s is a known status condition (including none).
func (s StatusCondition) Valid() bool {
	switch s {
	case StatusNone, StatusBurn, StatusPoison, StatusParalysis:
		return true
	}
	return false
}

// MoveEffect is the declared secondary effect of a move. All fields are
// optional and applied when present.
type MoveEffect struct {
	Status StatusCondition `json:"status,omitempty" yaml:"status"`
	// StatusChance is a percentage; 0 with a status set means always.
	StatusChance  int `json:"status_chance,omitempty" yaml:"status_chance"`
	HealPercent   int `json:"heal_percent,omitempty" yaml:"heal_percent"`
	RecoilPercent int `json:"recoil_percent,omitempty" yaml:"recoil_percent"`
}

// Move is an immutable move definition from the reference catalog.
type Move struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Category MoveCategory `json:"category"`
	// Power is 0 for moves without a damage component.
	Power int `json:"power"`
	// Accuracy is a percentage in 1..100; 0 means the move never misses.
	Accuracy int        `json:"accuracy"`
	Priority int        `json:"priority"`
	Effect   MoveEffect `json:"effect"`
}

// Damaging reports whether the move has a damage component.
func (m Move) Damaging() bool {
	return m.Category != CategoryStatus && m.Power > 0
}

// RosterEntry is the caller-supplied description of one team member.
type RosterEntry struct {
	CreatureID int   `json:"creature_id"`
	Level      int   `json:"level"`
	Moves      []int `json:"moves"`
	// CurrentHP resumes a combatant at a given HP; nil means full health.
	CurrentHP *int `json:"current_hp,omitempty"`
}

// Combatant is a creature bound into a battle.
type Combatant struct {
	CreatureID int             `json:"creature_id"`
	Name       string          `json:"name"`
	Types      []string        `json:"types"`
	Level      int             `json:"level"`
	Stats      StatBlock       `json:"stats"`
	CurrentHP  int             `json:"current_hp"`
	Moves      []int           `json:"moves"`
	Status     StatusCondition `json:"status,omitempty"`
}

// Fainted is derived from the current HP.
func (c *Combatant) Fainted() bool { return c.CurrentHP <= 0 }

// MaxHP returns the level-scaled maximum HP.
func (c *Combatant) MaxHP() int { return c.Stats.HP }

// NoActive marks a side whose active combatant fainted and was not yet replaced.
const NoActive = -1

// Side is one participant's roster plus the active pointer.
type Side struct {
	Name           string      `json:"name"`
	Roster         []Combatant `json:"roster"`
	Active         int         `json:"active"`
	AwaitingSwitch bool        `json:"awaiting_switch"`
	AIControlled   bool        `json:"ai_controlled"`
}

// ActiveCombatant returns the active combatant or nil when none is set.
func (s *Side) ActiveCombatant() *Combatant {
	if s.Active < 0 || s.Active >= len(s.Roster) {
		return nil
	}
	return &s.Roster[s.Active]
}

// Living counts non-fainted roster members.
func (s *Side) Living() int {
	n := 0
	for i := range s.Roster {
		if !s.Roster[i].Fainted() {
			n++
		}
	}
	return n
}

// SwitchTargets lists roster indexes a switch may legally target.
func (s *Side) SwitchTargets() []int {
	out := make([]int, 0, len(s.Roster))
	for i := range s.Roster {
		if i == s.Active || s.Roster[i].Fainted() {
			continue
		}
		out = append(out, i)
	}
	return out
}

// SideID identifies one of the two sides of a battle.
type SideID int

const (
	SidePlayer   SideID = 0
	SideOpponent SideID = 1
	// SideNone is used where no side applies (e.g. no winner yet).
	SideNone SideID = -1
)

// Other returns the opposing side.
func (s SideID) Other() SideID {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

func (s SideID) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	}
	return "none"
}

// MarshalText renders the side by name in JSON.
func (s SideID) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (s *SideID) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player":
		*s = SidePlayer
	case "opponent":
		*s = SideOpponent
	case "none", "":
		*s = SideNone
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}

// Outcome is the terminal flag of a battle.
type Outcome string

const (
	OutcomeOngoing           Outcome = "ongoing"
	OutcomePlayerWon         Outcome = "player_won"
	OutcomeOpponentWon       Outcome = "opponent_won"
	OutcomePlayerForfeited   Outcome = "player_forfeited"
	OutcomeOpponentForfeited Outcome = "opponent_forfeited"
)

// Terminal reports whether the outcome ends the battle.
func (o Outcome) Terminal() bool {
	return o != OutcomeOngoing && o != ""
}

// Winner returns the winning side for terminal outcomes.
func (o Outcome) Winner() SideID {
	switch o {
	case OutcomePlayerWon, OutcomeOpponentForfeited:
		return SidePlayer
	case OutcomeOpponentWon, OutcomePlayerForfeited:
		return SideOpponent
	}
	return SideNone
}

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeOngoing, OutcomePlayerWon, OutcomeOpponentWon, OutcomePlayerForfeited, OutcomeOpponentForfeited:
		return true
	}
	return false
}

// WonBy returns the outcome for a knockout win by side.
func WonBy(side SideID) Outcome {
	if side == SidePlayer {
		return OutcomePlayerWon
	}
	return OutcomeOpponentWon
}

// ForfeitedBy returns the outcome for a forfeit by side.
func ForfeitedBy(side SideID) Outcome {
	if side == SidePlayer {
		return OutcomePlayerForfeited
	}
	return OutcomeOpponentForfeited
}

// BattleState is the complete, serializable state of a battle.
type BattleState struct {
	Seed  uint64  `json:"seed"`
	Turn  int     `json:"turn"`
	Step  int     `json:"step"`
	Sides [2]Side `json:"sides"`
	// Log is append-only narration.
	Log     []string `json:"log"`
	Outcome Outcome  `json:"outcome"`
	// Boundary is the log index where the latest resolution started.
	Boundary int `json:"boundary"`
	// FinishedStep is the Step at which the battle became terminal.
	FinishedStep int `json:"finished_step"`
}

// Side returns a pointer to the side identified by id.
func (b *BattleState) Side(id SideID) *Side { return &b.Sides[id] }

// Clone returns a deep copy so resolution never aliases the caller's state.
func (b *BattleState) Clone() *BattleState {
	out := *b
	out.Log = append([]string(nil), b.Log...)
	for i := range b.Sides {
		roster := make([]Combatant, len(b.Sides[i].Roster))
		for j, c := range b.Sides[i].Roster {
			c.Types = append([]string(nil), c.Types...)
			c.Moves = append([]int(nil), c.Moves...)
			roster[j] = c
		}
		out.Sides[i].Roster = roster
	}
	return &out
}

// ActionKind tags the Action variant.
type ActionKind string

const (
	ActionUseMove ActionKind = "move"
	ActionSwitch  ActionKind = "switch"
	ActionForfeit ActionKind = "forfeit"
)

// Action is one side's submission for a turn.
type Action struct {
	Kind ActionKind `json:"action"`
	// Slot is the move slot index for ActionUseMove.
	Slot int `json:"slot"`
	// Target is the roster index for ActionSwitch.
	Target int `json:"target"`
}

// UseMove builds a move action for the given slot.
func UseMove(slot int) Action { return Action{Kind: ActionUseMove, Slot: slot} }

// Switch builds a switch action toward a roster index.
func Switch(target int) Action { return Action{Kind: ActionSwitch, Target: target} }

// Forfeit builds a forfeit action.
func Forfeit() Action { return Action{Kind: ActionForfeit} }
