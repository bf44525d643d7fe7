package main

import (
	"os"

	"github.com/ericogr/creature-battles/internal/api"
	"github.com/ericogr/creature-battles/internal/catalog"
	"github.com/ericogr/creature-battles/internal/config"
	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/engine"
	"github.com/ericogr/creature-battles/internal/logging"
	"github.com/ericogr/creature-battles/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Configuration path may be provided via BATTLE_CONFIG; a missing file
	// falls back to built-in defaults.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg := loadConfigOrExit(configPath)

	if lvl := os.Getenv(constants.EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	logging.SetLevel(cfg.LogLevel)

	if dbPath := os.Getenv(constants.EnvDatabasePath); dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logging.Fatal("Failed to load reference catalog", err, logging.Fields{constants.LogFieldPath: cfg.CatalogPath})
	}
	policy, err := engine.PolicyByName(cfg.Opponent.Policy)
	if err != nil {
		logging.Fatal("Invalid opponent policy", err, nil)
	}
	eng, err := engine.New(cat, cfg.Rules, policy)
	if err != nil {
		logging.Fatal("Failed to build battle engine", err, nil)
	}

	repo := createRepositoryOrExit(cfg.DatabasePath)
	svc := service.New(repo, eng, cat, cfg.Opponent)
	startIdleScanner(svc, cfg.IdleTimeout, cfg.IdleScanInterval)

	router := gin.Default()
	api.RegisterRoutes(router, api.NewBattleHandler(svc, cat))

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
