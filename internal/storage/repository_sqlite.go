package storage

import (
	"errors"
	"time"

	"github.com/ericogr/creature-battles/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultHistoryLimit = 50

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.BattleRecord) error {
	if b.LastSeen.IsZero() {
		b.LastSeen = time.Now().UTC()
	}
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattle(id uint) (*game.BattleRecord, error) {
	var b game.BattleRecord
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.BattleRecord, expectedVersion int) error {
	now := time.Now().UTC()
	res := r.db.Model(&game.BattleRecord{}).
		Where("id = ? AND version = ?", b.ID, expectedVersion).
		Updates(map[string]interface{}{
			"version":   expectedVersion + 1,
			"outcome":   b.Outcome,
			"turn":      b.Turn,
			"snapshot":  b.Snapshot,
			"archived":  b.Archived,
			"last_seen": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	b.Version = expectedVersion + 1
	b.LastSeen = now
	return nil
}

func (r *sqliteRepository) FindIdleBattles(cutoff time.Time) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	err := r.db.Where("outcome = ? AND last_seen <= ?", game.OutcomeOngoing, cutoff).
		Order("last_seen asc").
		Find(&out).Error
	return out, err
}

func (r *sqliteRepository) FindUnarchivedBattles(limit int) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	err := r.db.Where("outcome <> ? AND archived = ?", game.OutcomeOngoing, false).
		Order("id asc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *sqliteRepository) ArchiveBattle(battleID uint, h *game.HistoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		h.BattleID = battleID
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "battle_id"}},
			DoNothing: true,
		}).Create(h)
		if res.Error != nil {
			return res.Error
		}
		// An existing entry means the stats were already counted.
		if res.RowsAffected > 0 {
			if err := upsertStats(tx, h); err != nil {
				return err
			}
		}
		return tx.Model(&game.BattleRecord{}).Where("id = ?", battleID).Update("archived", true).Error
	})
}

// upsertStats adds one finished battle to the player's profile.
func upsertStats(tx *gorm.DB, h *game.HistoryEntry) error {
	p := game.PlayerProfile{PlayerID: h.PlayerID, BattlesPlayed: 1}
	if h.Result == game.ResultWin {
		p.Wins = 1
	} else {
		p.Losses = 1
	}
	if h.Outcome == game.OutcomePlayerForfeited {
		p.Forfeits = 1
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"battles_played": gorm.Expr("battles_played + ?", p.BattlesPlayed),
			"wins":           gorm.Expr("wins + ?", p.Wins),
			"losses":         gorm.Expr("losses + ?", p.Losses),
			"forfeits":       gorm.Expr("forfeits + ?", p.Forfeits),
			"updated_at":     time.Now().UTC(),
		}),
	}).Create(&p).Error
}

func (r *sqliteRepository) ListHistory(playerID string, result game.HistoryResult, limit int) ([]game.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	q := r.db.Where("player_id = ?", playerID)
	if result != "" {
		q = q.Where("result = ?", result)
	}
	var out []game.HistoryEntry
	err := q.Order("timestamp desc").Order("id desc").Limit(limit).Find(&out).Error
	return out, err
}

func (r *sqliteRepository) GetStats(playerID string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.PlayerProfile{PlayerID: playerID}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) MostUsedTeam(playerID string) (string, int, error) {
	var row struct {
		TeamKey string
		Uses    int
	}
	err := r.db.Model(&game.HistoryEntry{}).
		Select("team_key, COUNT(*) AS uses").
		Where("player_id = ? AND team_key <> ''", playerID).
		Group("team_key").
		Order("uses DESC").Order("team_key ASC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", 0, err
	}
	return row.TeamKey, row.Uses, nil
}
