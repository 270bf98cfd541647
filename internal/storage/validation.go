// Package storage provides the data persistence layer for classification runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/sector-sift/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRun    = errors.New("invalid run")
	ErrInvalidResult = errors.New("invalid run result")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun validates a run and its results.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if strings.TrimSpace(run.Classifier) == "" {
		return fmt.Errorf("%w: missing classifier", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	if run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidRun)
	}
	if run.Correct > run.Labeled || run.Labeled > run.Total {
		return fmt.Errorf("%w: counts out of range (total %d, labeled %d, correct %d)",
			ErrInvalidRun, run.Total, run.Labeled, run.Correct)
	}

	for i, res := range run.Results {
		if res.Confidence < 0 || res.Confidence > 1 {
			return fmt.Errorf("result at index %d: %w: confidence must be between 0 and 1", i, ErrInvalidResult)
		}
	}
	return nil
}
