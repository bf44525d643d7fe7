package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericogr/creature-battles/internal/game"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "battles.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewSQLiteRepository(db)
}

func TestUpdateBattle_OptimisticVersion(t *testing.T) {
	repo := newTestRepo(t)
	b := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomeOngoing, Turn: 1, Snapshot: []byte(`{}`)}
	if err := repo.CreateBattle(b); err != nil {
		t.Fatalf("create: %v", err)
	}

	first := *b
	first.Turn = 2
	if err := repo.UpdateBattle(&first, 0); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if first.Version != 1 {
		t.Fatalf("expected version 1, got %d", first.Version)
	}

	stale := *b
	stale.Turn = 9
	if err := repo.UpdateBattle(&stale, 0); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	got, err := repo.GetBattle(b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Turn != 2 || got.Version != 1 {
		t.Fatalf("stale write leaked: turn=%d version=%d", got.Turn, got.Version)
	}
}

func TestGetBattle_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetBattle(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindIdleBattles(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().UTC()
	old := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomeOngoing, LastSeen: now.Add(-time.Hour)}
	fresh := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomeOngoing, LastSeen: now}
	done := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomePlayerWon, LastSeen: now.Add(-time.Hour)}
	for _, b := range []*game.BattleRecord{old, fresh, done} {
		if err := repo.CreateBattle(b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	idle, err := repo.FindIdleBattles(now.Add(-30 * time.Minute))
	if err != nil {
		t.Fatalf("find idle: %v", err)
	}
	if len(idle) != 1 || idle[0].ID != old.ID {
		t.Fatalf("expected only the old ongoing battle, got %+v", idle)
	}
}

func TestArchiveBattle_StatsHistoryAndIdempotence(t *testing.T) {
	repo := newTestRepo(t)
	archive := func(result game.HistoryResult, outcome game.Outcome, team string) uint {
		b := &game.BattleRecord{PlayerID: "p1", Outcome: outcome}
		if err := repo.CreateBattle(b); err != nil {
			t.Fatalf("create: %v", err)
		}
		h := &game.HistoryEntry{PlayerID: "p1", Result: result, Outcome: outcome, TeamKey: team, Timestamp: time.Now().UTC(),
			PlayerTeam: []game.TeamMember{{CreatureID: 4, Name: "Charmander", Level: 10}},
			BattleLog:  []string{"The battle begins!"}}
		if err := repo.ArchiveBattle(b.ID, h); err != nil {
			t.Fatalf("archive: %v", err)
		}
		return b.ID
	}
	id := archive(game.ResultWin, game.OutcomePlayerWon, "4-7")
	archive(game.ResultLoss, game.OutcomePlayerForfeited, "4-7")
	archive(game.ResultLoss, game.OutcomeOpponentWon, "1-25")

	// A second archive of the same battle must not count twice.
	if err := repo.ArchiveBattle(id, &game.HistoryEntry{PlayerID: "p1", Result: game.ResultWin, Outcome: game.OutcomePlayerWon}); err != nil {
		t.Fatalf("re-archive: %v", err)
	}

	stats, err := repo.GetStats("p1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.BattlesPlayed != 3 || stats.Wins != 1 || stats.Losses != 2 || stats.Forfeits != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	losses, err := repo.ListHistory("p1", game.ResultLoss, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(losses) != 2 {
		t.Fatalf("expected 2 losses, got %d", len(losses))
	}
	all, err := repo.ListHistory("p1", "", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all) != 3 || len(all[len(all)-1].PlayerTeam) != 1 || all[0].BattleLog[0] != "The battle begins!" {
		t.Fatalf("unexpected history %+v", all)
	}

	team, uses, err := repo.MostUsedTeam("p1")
	if err != nil {
		t.Fatalf("most used: %v", err)
	}
	if team != "4-7" || uses != 2 {
		t.Fatalf("expected 4-7 x2, got %q x%d", team, uses)
	}

	b, err := repo.GetBattle(id)
	if err != nil || !b.Archived {
		t.Fatalf("expected archived battle, got %+v %v", b, err)
	}
}

func TestGetStats_UnknownPlayerIsZero(t *testing.T) {
	repo := newTestRepo(t)
	stats, err := repo.GetStats("ghost")
	if err != nil || stats.BattlesPlayed != 0 || stats.PlayerID != "ghost" {
		t.Fatalf("unexpected %+v %v", stats, err)
	}
	team, uses, err := repo.MostUsedTeam("ghost")
	if err != nil || team != "" || uses != 0 {
		t.Fatalf("unexpected most used %q %d %v", team, uses, err)
	}
}

func TestFindUnarchivedBattles(t *testing.T) {
	repo := newTestRepo(t)
	ongoing := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomeOngoing}
	pending := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomeOpponentWon}
	done := &game.BattleRecord{PlayerID: "p1", Outcome: game.OutcomePlayerWon}
	for _, b := range []*game.BattleRecord{ongoing, pending, done} {
		if err := repo.CreateBattle(b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	h := &game.HistoryEntry{PlayerID: "p1", Result: game.ResultWin, Outcome: game.OutcomePlayerWon, Timestamp: time.Now().UTC()}
	if err := repo.ArchiveBattle(done.ID, h); err != nil {
		t.Fatalf("archive: %v", err)
	}

	got, err := repo.FindUnarchivedBattles(10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].ID != pending.ID {
		t.Fatalf("expected only the unarchived finished battle, got %+v", got)
	}
}
