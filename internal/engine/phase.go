package engine

import (
	"context"
	"errors"

	"github.com/ericogr/creature-battles/internal/game"
	"github.com/looplab/fsm"
)

// Phase is the state-machine position of a battle. It is derived from the
// battle state rather than stored.
type Phase string

const (
	PhaseOngoing        Phase = "ongoing"
	PhaseAwaitingSwitch Phase = "awaiting_switch"
	PhaseTerminal       Phase = "terminal"
)

// PhaseOf derives the phase of a battle state.
func PhaseOf(s *game.BattleState) Phase {
	if s.Outcome.Terminal() {
		return PhaseTerminal
	}
	for i := range s.Sides {
		if s.Sides[i].AwaitingSwitch {
			return PhaseAwaitingSwitch
		}
	}
	return PhaseOngoing
}

const (
	eventUseMove = "use_move"
	eventSwitch  = "switch"
	eventFaint   = "faint"
	eventReplace = "replace"
	eventFinish  = "finish"
)

// phaseMachine gates which actions a phase accepts and which transitions a
// resolution may perform.
type phaseMachine struct {
	f *fsm.FSM
}

func newPhaseMachine(p Phase) *phaseMachine {
	ongoing, awaiting, terminal := string(PhaseOngoing), string(PhaseAwaitingSwitch), string(PhaseTerminal)
	return &phaseMachine{f: fsm.NewFSM(string(p), fsm.Events{
		{Name: eventUseMove, Src: []string{ongoing}, Dst: ongoing},
		{Name: eventSwitch, Src: []string{ongoing}, Dst: ongoing},
		{Name: eventFaint, Src: []string{ongoing}, Dst: awaiting},
		{Name: eventReplace, Src: []string{awaiting}, Dst: ongoing},
		{Name: eventFinish, Src: []string{ongoing, awaiting}, Dst: terminal},
	}, fsm.Callbacks{})}
}

func (m *phaseMachine) current() Phase { return Phase(m.f.Current()) }

func (m *phaseMachine) acceptsMove() bool { return m.f.Can(eventUseMove) }

func (m *phaseMachine) acceptsSwitch() bool {
	return m.f.Can(eventSwitch) || m.f.Can(eventReplace)
}

func (m *phaseMachine) acceptsForfeit() bool { return m.f.Can(eventFinish) }

// advance moves the machine to the phase the resolved state ended in.
func (m *phaseMachine) advance(to Phase) error {
	from := m.current()
	if from == to {
		return nil
	}
	var ev string
	switch {
	case to == PhaseTerminal:
		ev = eventFinish
	case from == PhaseOngoing && to == PhaseAwaitingSwitch:
		ev = eventFaint
	case from == PhaseAwaitingSwitch && to == PhaseOngoing:
		ev = eventReplace
	}
	if ev == "" || !m.f.Can(ev) {
		return invariantf("illegal phase transition %s -> %s", from, to)
	}
	if err := m.f.Event(context.Background(), ev); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return nil
		}
		return invariantf("phase transition %s -> %s: %v", from, to, err)
	}
	return nil
}
