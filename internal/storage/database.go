package storage

import (
	"github.com/ericogr/creature-battles/internal/game"
	"github.com/ericogr/creature-battles/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema up to date
// via AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.HistoryEntry{}, &game.PlayerProfile{}); err != nil {
		return nil, err
	}
	// Snapshots are rewritten on every turn; WAL keeps readers off the writer's back.
	if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		logging.Warn("failed to enable WAL journal", err, logging.Fields{"source": dataSourceName})
	}
	return db, nil
}
