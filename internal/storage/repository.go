package storage

import (
	"errors"
	"time"

	"github.com/ericogr/creature-battles/internal/game"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("battle was modified concurrently")
)

// Repository persists battles, the history archive and per-player stats.
type Repository interface {
	CreateBattle(b *game.BattleRecord) error
	GetBattle(id uint) (*game.BattleRecord, error)
	// UpdateBattle writes b only if the stored version still equals
	// expectedVersion, then bumps b.Version. A lost race returns
	// ErrVersionConflict and writes nothing.
	UpdateBattle(b *game.BattleRecord, expectedVersion int) error
	// FindIdleBattles returns ongoing battles last touched at or before cutoff.
	FindIdleBattles(cutoff time.Time) ([]game.BattleRecord, error)
	// FindUnarchivedBattles returns up to limit finished battles whose
	// archive entry was never written.
	FindUnarchivedBattles(limit int) ([]game.BattleRecord, error)
	// ArchiveBattle stores the history entry, updates the player's stats and
	// flags the battle archived in one transaction. Archiving twice is a no-op.
	ArchiveBattle(battleID uint, h *game.HistoryEntry) error
	ListHistory(playerID string, result game.HistoryResult, limit int) ([]game.HistoryEntry, error)
	GetStats(playerID string) (*game.PlayerProfile, error)
	// MostUsedTeam returns the team key archived most often for the player
	// and how many battles used it. Ties go to the lexically smallest key.
	MostUsedTeam(playerID string) (string, int, error)
}
