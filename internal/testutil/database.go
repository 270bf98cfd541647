// Package testutil provides test utilities for sector-sift: in-memory
// databases with migrations applied and builders for run fixtures.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Runs    []*model.Run
}

// SetupTestDB creates a new in-memory test database seeded with runs.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewRunBuilder("keyword").
//			WithResult("ibm", "information technology and services", "IT Services").
//			Build(),
//	)
func SetupTestDB(t *testing.T, runs ...*model.Run) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Runs: runs})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Runs           []*model.Run
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for _, run := range opts.Runs {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("failed to seed run %q: %v", run.ID, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		Runs:    opts.Runs,
		t:       t,
	}
}

// MustGetRun loads a run or fails the test.
func (db *TestDB) MustGetRun(id string) *model.Run {
	db.t.Helper()
	run, err := db.Storage.GetRun(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to load run %q: %v", id, err)
	}
	return run
}

// RunBuilder assembles run fixtures.
type RunBuilder struct {
	run *model.Run
	seq int
}

// NewRunBuilder starts a run for the given classifier with a deterministic ID.
func NewRunBuilder(classifier string) *RunBuilder {
	started := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return &RunBuilder{run: &model.Run{
		ID:         fmt.Sprintf("run-%s-%d", classifier, started.Unix()),
		Classifier: classifier,
		Source:     "companies.csv",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}}
}

// WithID overrides the run ID.
func (b *RunBuilder) WithID(id string) *RunBuilder {
	b.run.ID = id
	return b
}

// StartedAt sets the run's start time; the run lasts one second.
func (b *RunBuilder) StartedAt(t time.Time) *RunBuilder {
	b.run.StartedAt = t
	b.run.FinishedAt = t.Add(time.Second)
	return b
}

// WithResult appends a classified row. An empty original leaves it unlabeled;
// a prediction equal to the original (ignoring case) counts as correct.
func (b *RunBuilder) WithResult(company, original, predicted string) *RunBuilder {
	b.seq++
	confidence := 0.0
	if predicted != model.Unclassified {
		confidence = 0.5
	}
	b.run.Results = append(b.run.Results, model.RunResult{
		Row:               b.seq + 1,
		CompanyName:       company,
		OriginalIndustry:  original,
		PredictedIndustry: predicted,
		Confidence:        confidence,
	})
	b.run.Total++
	if original != "" {
		b.run.Labeled++
		if strings.EqualFold(original, predicted) {
			b.run.Correct++
		}
	}
	return b
}

// WithFailure appends a row whose classification failed.
func (b *RunBuilder) WithFailure(company, errMsg string) *RunBuilder {
	b.seq++
	b.run.Results = append(b.run.Results, model.RunResult{
		Row:         b.seq + 1,
		CompanyName: company,
		Error:       errMsg,
	})
	b.run.Total++
	b.run.Failed++
	return b
}

// Build returns the run.
func (b *RunBuilder) Build() *model.Run {
	return b.run
}
