package engine

import (
	"github.com/ericogr/creature-battles/internal/game"
)

// TurnReport summarizes the latest resolution of a battle.
type TurnReport struct {
	Turn    int          `json:"turn"`
	Phase   Phase        `json:"phase"`
	Outcome game.Outcome `json:"outcome"`
	Winner  game.SideID  `json:"winner"`
	// JustEnded is true only for the resolution that made the battle terminal.
	JustEnded          bool     `json:"just_ended"`
	PlayerMustSwitch   bool     `json:"player_must_switch"`
	OpponentMustSwitch bool     `json:"opponent_must_switch"`
	NewLog             []string `json:"new_log"`
}

// Report derives the end-of-resolution facts from a state. It is pure.
func Report(s *game.BattleState) TurnReport {
	boundary := min(max(s.Boundary, 0), len(s.Log))
	return TurnReport{
		Turn:               s.Turn,
		Phase:              PhaseOf(s),
		Outcome:            s.Outcome,
		Winner:             s.Outcome.Winner(),
		JustEnded:          s.Outcome.Terminal() && s.FinishedStep == s.Step,
		PlayerMustSwitch:   s.Sides[game.SidePlayer].AwaitingSwitch,
		OpponentMustSwitch: s.Sides[game.SideOpponent].AwaitingSwitch,
		NewLog:             append([]string{}, s.Log[boundary:]...),
	}
}

// CombatantView is the read-only projection of a combatant.
type CombatantView struct {
	Index      int                  `json:"index"`
	CreatureID int                  `json:"creature_id"`
	Name       string               `json:"name"`
	Types      []string             `json:"types"`
	Level      int                  `json:"level"`
	HP         int                  `json:"hp"`
	MaxHP      int                  `json:"max_hp"`
	Fainted    bool                 `json:"fainted"`
	Status     game.StatusCondition `json:"status"`
	Moves      []int                `json:"moves"`
	Active     bool                 `json:"active"`
}

// SideView is the read-only projection of a side, including what it may
// submit next.
type SideView struct {
	Name           string          `json:"name"`
	Active         int             `json:"active"`
	AwaitingSwitch bool            `json:"awaiting_switch"`
	AIControlled   bool            `json:"ai_controlled"`
	Combatants     []CombatantView `json:"combatants"`
	CanUseMove     bool            `json:"can_use_move"`
	SwitchTargets  []int           `json:"switch_targets"`
}

// PublicView is what callers render and use to decide the next submission.
type PublicView struct {
	Turn     int          `json:"turn"`
	Phase    Phase        `json:"phase"`
	Outcome  game.Outcome `json:"outcome"`
	Winner   game.SideID  `json:"winner"`
	Player   SideView     `json:"player"`
	Opponent SideView     `json:"opponent"`
	Log      []string     `json:"log"`
}

// Describe projects a state into a PublicView. The view shares no memory
// with the state.
func Describe(s *game.BattleState) PublicView {
	phase := PhaseOf(s)
	return PublicView{
		Turn:     s.Turn,
		Phase:    phase,
		Outcome:  s.Outcome,
		Winner:   s.Outcome.Winner(),
		Player:   describeSide(s.Side(game.SidePlayer), phase),
		Opponent: describeSide(s.Side(game.SideOpponent), phase),
		Log:      append([]string{}, s.Log...),
	}
}

func describeSide(side *game.Side, phase Phase) SideView {
	v := SideView{
		Name:           side.Name,
		Active:         side.Active,
		AwaitingSwitch: side.AwaitingSwitch,
		AIControlled:   side.AIControlled,
		Combatants:     make([]CombatantView, 0, len(side.Roster)),
		SwitchTargets:  []int{},
	}
	for i := range side.Roster {
		c := &side.Roster[i]
		v.Combatants = append(v.Combatants, CombatantView{
			Index:      i,
			CreatureID: c.CreatureID,
			Name:       c.Name,
			Types:      append([]string{}, c.Types...),
			Level:      c.Level,
			HP:         c.CurrentHP,
			MaxHP:      c.MaxHP(),
			Fainted:    c.Fainted(),
			Status:     c.Status,
			Moves:      append([]int{}, c.Moves...),
			Active:     i == side.Active,
		})
	}
	if phase == PhaseTerminal {
		return v
	}
	if phase == PhaseOngoing || side.AwaitingSwitch {
		v.SwitchTargets = side.SwitchTargets()
	}
	if phase == PhaseOngoing {
		if c := side.ActiveCombatant(); c != nil && len(c.Moves) > 0 {
			v.CanUseMove = true
		}
	}
	return v
}
