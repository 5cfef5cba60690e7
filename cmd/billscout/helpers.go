package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/billscout/internal/classification"
	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/config"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/Veraticus/billscout/internal/scoring"
	"github.com/Veraticus/billscout/internal/service"
	"github.com/Veraticus/billscout/internal/storage"
	"github.com/spf13/viper"
)

const defaultServerAddr = ":8080"

// envKeyReplacer maps nested keys like database.path to BILLSCOUT_DATABASE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// closeStorage closes store, logging any failure.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close database", nil)
	}
}

// loadRuleSet returns the configured rule table, or the built-in one.
func loadRuleSet() (model.RuleSet, error) {
	path := viper.GetString("classification.rules_file")
	if path == "" {
		return classification.DefaultRules(), nil
	}

	rs, err := config.LoadRuleSet(config.ExpandPath(path))
	if err != nil {
		return model.RuleSet{}, err
	}

	common.LogDebug("Loaded rule table", common.Fields{"path": path, "rules": len(rs.Rules)})
	return rs, nil
}

// loadClassifier builds a classifier over the configured rule table.
func loadClassifier() (*classification.Classifier, error) {
	rs, err := loadRuleSet()
	if err != nil {
		return nil, err
	}
	return classification.NewClassifier(rs), nil
}

// newScorer builds a scorer honoring scoring.workers; zero keeps the default.
func newScorer() *scoring.Scorer {
	var opts []scoring.Option
	if workers := viper.GetInt("scoring.workers"); workers > 0 {
		opts = append(opts, scoring.WithWorkers(workers))
	}
	return scoring.NewScorer(opts...)
}
