package service

import (
	"fmt"
	"math/rand/v2"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/engine"
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/logging"
)

const (
	defaultPlayerName   = "Player"
	defaultOpponentName = "Rival"
	maxNameLength       = 32
)

// StartRequest is the player's side of a new battle.
type StartRequest struct {
	PlayerName string             `json:"player_name"`
	Team       []game.RosterEntry `json:"team"`
}

func randomSeed() uint64 { return rand.Uint64() }

// StartBattle builds the player's team, generates an AI opponent and stores
// the new battle.
func (s *Service) StartBattle(playerID string, req StartRequest) (*BattleView, error) {
	if len(req.Team) == 0 || len(req.Team) > MaxTeamSize {
		return nil, fmt.Errorf("%w: team must have between 1 and %d members", ErrInvalidTeam, MaxTeamSize)
	}
	name := req.PlayerName
	if name == "" {
		name = defaultPlayerName
	}
	if len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: player name exceeds %d characters", ErrInvalidTeam, maxNameLength)
	}
	player, err := s.engine.BuildRoster(req.Team)
	if err != nil {
		return nil, err
	}

	seed := s.seed()
	level := s.opponent.Level
	if level <= 0 {
		level = averageLevel(req.Team)
	}
	entries := GenerateOpponent(s.catalog, s.engine.Rules(), newRand(seed), s.opponent.Size, level)
	opponent, err := s.engine.BuildRoster(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: generated opponent: %v", engine.ErrInternalInvariant, err)
	}

	state, err := s.engine.StartBattle(player, opponent, engine.StartOptions{
		PlayerName:   name,
		OpponentName: defaultOpponentName,
		OpponentAI:   true,
		Seed:         seed,
	})
	if err != nil {
		return nil, err
	}
	data, err := game.EncodeSnapshot(state)
	if err != nil {
		return nil, err
	}
	rec := &game.BattleRecord{
		PlayerID: playerID,
		Outcome:  state.Outcome,
		Turn:     state.Turn,
		Level:    level,
		Snapshot: data,
		LastSeen: s.now(),
	}
	if err := s.repo.CreateBattle(rec); err != nil {
		return nil, err
	}
	logging.Info("battle started", logging.Fields{constants.LogFieldBattleID: rec.ID, constants.LogFieldPlayerID: playerID, "level": level})
	rep := engine.Report(state)
	return &BattleView{ID: rec.ID, Version: rec.Version, Battle: engine.Describe(state), Report: &rep}, nil
}

func averageLevel(team []game.RosterEntry) int {
	if len(team) == 0 {
		return 1
	}
	sum := 0
	for _, e := range team {
		sum += e.Level
	}
	return max(1, sum/len(team))
}
