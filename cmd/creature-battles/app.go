package main

import (
	"github.com/ericogr/creature-battles/internal/config"
	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/logging"
	"github.com/ericogr/creature-battles/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{constants.LogFieldPath: path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
