package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/sector-sift/internal/classification"
	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/config"
	"github.com/Veraticus/sector-sift/internal/llm"
	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/service"
	"github.com/Veraticus/sector-sift/internal/storage"
)

// Classification methods accepted by --method.
const (
	methodKeyword = classification.EngineName
	methodLLM     = llm.ClassifierName
)

// loadRules returns the configured rule table, or the built-in one.
func loadRules() (model.RuleTable, error) {
	path := config.ExpandPath(viper.GetString("rules.path"))
	if path == "" {
		return classification.DefaultRules(), nil
	}

	table, err := classification.LoadRules(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Could not load rules from %s", path), err)
	}
	slog.Debug("loaded rules", "path", path, "industries", len(table))

	return table, nil
}

// newKeywordEngine builds the keyword engine from table, or from the
// configured rules when table is nil.
func newKeywordEngine(table model.RuleTable) (*classification.Engine, error) {
	if table == nil {
		var err error
		if table, err = loadRules(); err != nil {
			return nil, err
		}
	}

	return classification.NewEngine(table,
		classification.WithLogger(slog.Default()),
		classification.WithLabelBoost(viper.GetFloat64("rules.label_boost")),
	)
}

// newClassifier creates the classifier for method. With labels set the
// classifier is restricted to that taxonomy. The returned closer releases
// background resources and is never nil.
func newClassifier(method string, labels []string) (service.Classifier, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case methodKeyword, "":
		var table model.RuleTable
		if len(labels) > 0 {
			table = classification.RulesFromLabels(labels)
		}
		engine, err := newKeywordEngine(table)
		if err != nil {
			return nil, nil, err
		}
		return engine, nopCloser{}, nil
	case methodLLM:
		classifier, err := createLLMClassifier(labels)
		if err != nil {
			return nil, nil, err
		}
		return classifier, classifier, nil
	default:
		return nil, nil, common.NewUserError(
			fmt.Sprintf("Unknown method %q: use %s or %s", method, methodKeyword, methodLLM),
			common.ErrInvalidConfig,
		)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// initStorage opens the run database and applies migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		dbPath = config.ExpandPath("$HOME/.local/share/sift/sift.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}
