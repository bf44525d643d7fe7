package service

import (
	"sort"
	"time"

	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/storage"
)

type mockRepo struct {
	battles  map[uint]game.BattleRecord
	nextID   uint
	history  []game.HistoryEntry
	profiles map[string]*game.PlayerProfile
	updates  int

	// archiveErr makes ArchiveBattle fail while set.
	archiveErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{battles: map[uint]game.BattleRecord{}, profiles: map[string]*game.PlayerProfile{}}
}

func (m *mockRepo) CreateBattle(b *game.BattleRecord) error {
	m.nextID++
	b.ID = m.nextID
	m.battles[b.ID] = *b
	return nil
}

func (m *mockRepo) GetBattle(id uint) (*game.BattleRecord, error) {
	b, ok := m.battles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &b, nil
}

func (m *mockRepo) UpdateBattle(b *game.BattleRecord, expectedVersion int) error {
	cur, ok := m.battles[b.ID]
	if !ok || cur.Version != expectedVersion {
		return storage.ErrVersionConflict
	}
	b.Version = expectedVersion + 1
	m.battles[b.ID] = *b
	m.updates++
	return nil
}

func (m *mockRepo) FindIdleBattles(cutoff time.Time) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	for _, b := range m.battles {
		if b.Outcome == game.OutcomeOngoing && !b.LastSeen.After(cutoff) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) FindUnarchivedBattles(limit int) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	for _, b := range m.battles {
		if b.Outcome.Terminal() && !b.Archived {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) ArchiveBattle(battleID uint, h *game.HistoryEntry) error {
	if m.archiveErr != nil {
		return m.archiveErr
	}
	for _, e := range m.history {
		if e.BattleID == battleID {
			return nil
		}
	}
	h.BattleID = battleID
	m.history = append(m.history, *h)
	p, ok := m.profiles[h.PlayerID]
	if !ok {
		p = &game.PlayerProfile{PlayerID: h.PlayerID}
		m.profiles[h.PlayerID] = p
	}
	p.BattlesPlayed++
	if h.Result == game.ResultWin {
		p.Wins++
	} else {
		p.Losses++
	}
	if h.Outcome == game.OutcomePlayerForfeited {
		p.Forfeits++
	}
	b := m.battles[battleID]
	b.Archived = true
	m.battles[battleID] = b
	return nil
}

func (m *mockRepo) ListHistory(playerID string, result game.HistoryResult, limit int) ([]game.HistoryEntry, error) {
	var out []game.HistoryEntry
	for i := len(m.history) - 1; i >= 0; i-- {
		e := m.history[i]
		if e.PlayerID == playerID && (result == "" || e.Result == result) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepo) GetStats(playerID string) (*game.PlayerProfile, error) {
	if p, ok := m.profiles[playerID]; ok {
		cp := *p
		return &cp, nil
	}
	return &game.PlayerProfile{PlayerID: playerID}, nil
}

func (m *mockRepo) MostUsedTeam(playerID string) (string, int, error) {
	counts := map[string]int{}
	for _, e := range m.history {
		if e.PlayerID == playerID && e.TeamKey != "" {
			counts[e.TeamKey]++
		}
	}
	best, uses := "", 0
	for k, n := range counts {
		if n > uses || (n == uses && k < best) {
			best, uses = k, n
		}
	}
	return best, uses, nil
}
