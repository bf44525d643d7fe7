package game

import (
	"time"

	"gorm.io/gorm"
)

// BattleRecord is the stored row for a live or finished battle. The engine
// state lives in Snapshot; the other columns are denormalized for queries.
type BattleRecord struct {
	gorm.Model
	PlayerID string `json:"player_id" gorm:"index"`
	// Version is bumped on every successful write and used for optimistic
	// concurrency control.
	Version  int       `json:"version"`
	Outcome  Outcome   `json:"outcome" gorm:"index"`
	Turn     int       `json:"turn"`
	Level    int       `json:"level"`
	Snapshot []byte    `json:"-" gorm:"type:blob"`
	Archived bool      `json:"archived"`
	LastSeen time.Time `json:"last_seen" gorm:"index"`
}

// Store battle rows in a dedicated table.
func (BattleRecord) TableName() string { return "battles" }

// HistoryResult is the per-player result stored in the archive.
type HistoryResult string

const (
	ResultWin  HistoryResult = "win"
	ResultLoss HistoryResult = "loss"
)

// HistoryEntry is an archived, immutable summary of a finished battle.
type HistoryEntry struct {
	gorm.Model
	BattleID   uint          `json:"battle_id" gorm:"uniqueIndex"`
	PlayerID   string        `json:"player_id" gorm:"index"`
	Result     HistoryResult `json:"result" gorm:"index"`
	Outcome    Outcome       `json:"outcome"`
	Level      int           `json:"level"`
	Turns      int           `json:"turns"`
	TeamKey    string        `json:"team_key" gorm:"index"`
	PlayerTeam []TeamMember  `json:"player_team" gorm:"serializer:json"`
	EnemyTeam  []TeamMember  `json:"enemy_team" gorm:"serializer:json"`
	BattleLog  []string      `json:"battle_log" gorm:"serializer:json"`
	Timestamp  time.Time     `json:"timestamp"`
}

func (HistoryEntry) TableName() string { return "battle_history" }

// TeamMember is the compact per-combatant summary kept in history.
type TeamMember struct {
	CreatureID int    `json:"creature_id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Fainted    bool   `json:"fainted"`
}

// PlayerProfile stores aggregate stats per player.
type PlayerProfile struct {
	gorm.Model
	PlayerID      string `json:"player_id" gorm:"uniqueIndex"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Forfeits      int    `json:"forfeits"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }
