// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/sector-sift/internal/model"
)

// Classifier maps a company description to an industry. The keyword engine and
// the LLM classifier both implement it; callers pick one without depending on
// either's internals.
type Classifier interface {
	// Name identifies the implementation ("keyword", "llm").
	Name() string
	// Classify returns a result for the input. Implementations that call out to
	// external services may fail; the keyword engine never does.
	Classify(ctx context.Context, in model.ClassificationInput) (model.ClassificationResult, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Run operations
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	GetRunResults(ctx context.Context, id string) ([]model.RunResult, error)
	DeleteRun(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
