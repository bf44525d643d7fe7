package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ericogr/creature-battles/internal/engine"
)

const (
	DefaultPath          = "battle_config.json"
	defaultAddress       = ":8080"
	defaultDatabasePath  = "battles.db"
	defaultIdleTimeout   = 30 * time.Minute
	defaultScanInterval  = time.Minute
	defaultOpponentSize  = 3
	maxRosterSize        = 6
	defaultOpponentLevel = 0
)

// OpponentConfig controls generated AI opponents.
type OpponentConfig struct {
	Size int `json:"size"`
	// Level of generated creatures; 0 matches the player's average level.
	Level  int    `json:"level"`
	Policy string `json:"policy"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	DatabasePath     string         `json:"database_path"`
	CatalogPath      string         `json:"catalog_path"`
	LogLevel         string         `json:"log_level"`
	Rules            engine.Rules   `json:"rules"`
	Opponent         OpponentConfig `json:"opponent"`
	IdleTimeout      string         `json:"idle_timeout"`
	IdleScanInterval string         `json:"idle_scan_interval"`
}

// LoadedConfig is the validated service configuration.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	// CatalogPath points at a YAML catalog; empty means the embedded one.
	CatalogPath      string
	LogLevel         string
	Rules            engine.Rules
	Opponent         OpponentConfig
	IdleTimeout      time.Duration
	IdleScanInterval time.Duration
}

// Default returns the configuration used when no file is present.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:    defaultAddress,
		DatabasePath:     defaultDatabasePath,
		LogLevel:         "info",
		Rules:            engine.DefaultRules(),
		Opponent:         OpponentConfig{Size: defaultOpponentSize, Level: defaultOpponentLevel, Policy: engine.PolicyRandom},
		IdleTimeout:      defaultIdleTimeout,
		IdleScanInterval: defaultScanInterval,
	}
}

// LoadConfig reads the JSON configuration at path. A missing file yields the
// defaults; any field left out of the file keeps its default.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(b, path)
}

// Parse decodes and validates configuration data. path is only used in
// error messages.
func Parse(data []byte, path string) (*LoadedConfig, error) {
	def := Default()
	rc := rawConfig{
		DatabasePath: def.DatabasePath,
		LogLevel:     def.LogLevel,
		Rules:        def.Rules,
		Opponent:     def.Opponent,
	}
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := def
	if rc.Server != nil && strings.TrimSpace(rc.Server.Address) != "" {
		out.ServerAddress = strings.TrimSpace(rc.Server.Address)
	}
	if strings.TrimSpace(rc.DatabasePath) == "" {
		return nil, fmt.Errorf("config file %s: database_path must not be empty", path)
	}
	out.DatabasePath = rc.DatabasePath
	out.CatalogPath = strings.TrimSpace(rc.CatalogPath)
	out.LogLevel = rc.LogLevel

	if err := rc.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: rules: %w", path, err)
	}
	out.Rules = rc.Rules

	op := rc.Opponent
	if op.Size < 1 || op.Size > maxRosterSize {
		return nil, fmt.Errorf("config file %s: opponent.size must be between 1 and %d, got %d", path, maxRosterSize, op.Size)
	}
	if op.Level < 0 || op.Level > rc.Rules.MaxLevel {
		return nil, fmt.Errorf("config file %s: opponent.level must be between 0 and %d, got %d", path, rc.Rules.MaxLevel, op.Level)
	}
	if _, err := engine.PolicyByName(op.Policy); err != nil {
		return nil, fmt.Errorf("config file %s: opponent.policy: %w", path, err)
	}
	out.Opponent = op

	idle, err := parseDuration(rc.IdleTimeout, def.IdleTimeout)
	if err != nil {
		return nil, fmt.Errorf("config file %s: idle_timeout: %w", path, err)
	}
	scan, err := parseDuration(rc.IdleScanInterval, def.IdleScanInterval)
	if err != nil {
		return nil, fmt.Errorf("config file %s: idle_scan_interval: %w", path, err)
	}
	out.IdleTimeout = idle
	out.IdleScanInterval = scan
	return out, nil
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
