package engine

import (
	"errors"
	"fmt"
)

// TieBreak decides which side acts first when two moves share priority and
// effective speed.
type TieBreak string

const (
	TieBreakPlayer   TieBreak = "player"
	TieBreakOpponent TieBreak = "opponent"
)

// Rules holds the tunable constants of the battle math.
type Rules struct {
	// Random damage factor is drawn uniformly from [MinRandomFactor, MaxRandomFactor].
	MinRandomFactor float64 `json:"min_random_factor"`
	MaxRandomFactor float64 `json:"max_random_factor"`
	TieBreak        TieBreak `json:"tie_break"`

	// stat = base*level/LevelDivisor + StatBonus
	// hp   = base*level/LevelDivisor + level + HPBonus
	LevelDivisor int `json:"level_divisor"`
	StatBonus    int `json:"stat_bonus"`
	HPBonus      int `json:"hp_bonus"`
	MaxLevel     int `json:"max_level"`
	MaxMoves     int `json:"max_moves"`
}

// DefaultRules returns the standard constants.
func DefaultRules() Rules {
	return Rules{
		MinRandomFactor: 0.85,
		MaxRandomFactor: 1.0,
		TieBreak:        TieBreakPlayer,
		LevelDivisor:    50,
		StatBonus:       5,
		HPBonus:         10,
		MaxLevel:        100,
		MaxMoves:        4,
	}
}

// Validate checks the rules for internal consistency.
func (r Rules) Validate() error {
	if r.MinRandomFactor <= 0 || r.MaxRandomFactor > 1 || r.MinRandomFactor > r.MaxRandomFactor {
		return fmt.Errorf("random factor range [%v, %v] must satisfy 0 < min <= max <= 1", r.MinRandomFactor, r.MaxRandomFactor)
	}
	if r.TieBreak != TieBreakPlayer && r.TieBreak != TieBreakOpponent {
		return fmt.Errorf("unknown tie_break %q", r.TieBreak)
	}
	if r.LevelDivisor <= 0 {
		return errors.New("level_divisor must be positive")
	}
	if r.StatBonus < 0 || r.HPBonus < 0 {
		return errors.New("stat_bonus and hp_bonus must not be negative")
	}
	if r.MaxLevel <= 0 {
		return errors.New("max_level must be positive")
	}
	if r.MaxMoves <= 0 {
		return errors.New("max_moves must be positive")
	}
	return nil
}
