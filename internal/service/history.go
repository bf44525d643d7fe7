package service

import (
	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/keys"
	"github.com/ericogr/creature-battles/internal/logging"
)

const (
	historyLimit = 50
	// archiveBatch bounds one retry sweep.
	archiveBatch = 50
)

// PlayerStats aggregates a player's archived battles.
type PlayerStats struct {
	game.PlayerProfile
	MostUsedTeam     []game.TeamMember `json:"most_used_team"`
	MostUsedTeamUses int               `json:"most_used_team_uses"`
}

// archive records a finished battle. The battle itself is already stored as
// terminal, so failures are logged rather than returned.
func (s *Service) archive(rec *game.BattleRecord, state *game.BattleState) {
	h := buildHistoryEntry(rec, state)
	h.Timestamp = s.now()
	if err := s.repo.ArchiveBattle(rec.ID, h); err != nil {
		logging.Error("failed to archive battle", err, logging.Fields{constants.LogFieldBattleID: rec.ID, constants.LogFieldPlayerID: rec.PlayerID})
		return
	}
	rec.Archived = true
	logging.Info("battle finished", logging.Fields{constants.LogFieldBattleID: rec.ID, constants.LogFieldPlayerID: rec.PlayerID, constants.LogFieldOutcome: string(state.Outcome), constants.LogFieldTurn: state.Turn})
}

// RetryArchives archives finished battles whose earlier archive attempt
// failed and returns how many were archived.
func (s *Service) RetryArchives() (int, error) {
	pending, err := s.repo.FindUnarchivedBattles(archiveBatch)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range pending {
		rec := &pending[i]
		state, err := game.DecodeSnapshot(rec.Snapshot)
		if err != nil {
			logging.Error("cannot archive undecodable battle", err, logging.Fields{constants.LogFieldBattleID: rec.ID})
			continue
		}
		s.archive(rec, state)
		if rec.Archived {
			n++
		}
	}
	return n, nil
}

func buildHistoryEntry(rec *game.BattleRecord, state *game.BattleState) *game.HistoryEntry {
	result := game.ResultLoss
	if state.Outcome.Winner() == game.SidePlayer {
		result = game.ResultWin
	}
	player := state.Side(game.SidePlayer)
	ids := make([]int, 0, len(player.Roster))
	for _, c := range player.Roster {
		ids = append(ids, c.CreatureID)
	}
	return &game.HistoryEntry{
		PlayerID:   rec.PlayerID,
		Result:     result,
		Outcome:    state.Outcome,
		Level:      rec.Level,
		Turns:      state.Turn,
		TeamKey:    keys.TeamKey(ids),
		PlayerTeam: teamMembers(player.Roster),
		EnemyTeam:  teamMembers(state.Side(game.SideOpponent).Roster),
		BattleLog:  append([]string{}, state.Log...),
	}
}

func teamMembers(roster []game.Combatant) []game.TeamMember {
	out := make([]game.TeamMember, 0, len(roster))
	for i := range roster {
		c := &roster[i]
		out = append(out, game.TeamMember{CreatureID: c.CreatureID, Name: c.Name, Level: c.Level, Fainted: c.Fainted()})
	}
	return out
}

// History lists the player's archived battles, newest first. result may be
// empty, "win" or "loss".
func (s *Service) History(playerID, result string) ([]game.HistoryEntry, error) {
	r := game.HistoryResult(result)
	switch r {
	case "", game.ResultWin, game.ResultLoss:
	default:
		return nil, ErrInvalidResultFilter
	}
	out, err := s.repo.ListHistory(playerID, r, historyLimit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []game.HistoryEntry{}
	}
	return out, nil
}

// Stats returns the player's aggregate stats and most used team.
func (s *Service) Stats(playerID string) (*PlayerStats, error) {
	profile, err := s.repo.GetStats(playerID)
	if err != nil {
		return nil, err
	}
	key, uses, err := s.repo.MostUsedTeam(playerID)
	if err != nil {
		return nil, err
	}
	out := &PlayerStats{PlayerProfile: *profile, MostUsedTeam: []game.TeamMember{}, MostUsedTeamUses: uses}
	ids, err := keys.ParseTeamKey(key)
	if err != nil {
		logging.Warn("unparseable team key", err, logging.Fields{constants.LogFieldPlayerID: playerID})
		return out, nil
	}
	for _, id := range ids {
		m := game.TeamMember{CreatureID: id}
		if cr, err := s.catalog.Creature(id); err == nil {
			m.Name = cr.Name
		}
		out.MostUsedTeam = append(out.MostUsedTeam, m)
	}
	return out, nil
}
