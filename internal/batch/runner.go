// Package batch classifies tabular company data and scores the predictions
// against the data's own industry column.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/service"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Outcome is the classification of one record. Err is set when the
// classifier failed for that record; Result is then the zero value.
type Outcome struct {
	Err      error
	Record   model.CompanyRecord
	Result   model.ClassificationResult
	Duration time.Duration
}

// Runner maps records through a classifier.
type Runner struct {
	Classifier  service.Classifier
	Logger      *slog.Logger
	OnProgress  func(done, total int)
	OnOutcome   func(Outcome)
	Concurrency int
}

// Run classifies every record and returns outcomes in input order. A failing
// record never stops the run; only context cancellation does, in which case
// the context error is returned.
func (r *Runner) Run(ctx context.Context, records []model.CompanyRecord) ([]Outcome, error) {
	if r.Classifier == nil {
		return nil, fmt.Errorf("batch runner has no classifier")
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	outcomes := make([]Outcome, len(records))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			result, err := r.Classifier.Classify(gctx, rec.Input())
			outcome := Outcome{Record: rec, Result: result, Err: err, Duration: time.Since(start)}
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("record classification failed", "row", rec.Row, "company", rec.Name, "error", err)
			}
			outcomes[i] = outcome

			if r.OnOutcome != nil {
				r.OnOutcome(outcome)
			}
			if r.OnProgress != nil {
				r.OnProgress(int(done.Add(1)), len(records))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run canceled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch run canceled: %w", err)
	}

	logger.Debug("batch run finished", "classifier", r.Classifier.Name(), "records", len(records))

	return outcomes, nil
}

// NewRun assembles a persistable run from outcomes.
func NewRun(classifier, source string, started time.Time, outcomes []Outcome) *model.Run {
	report := Accuracy(outcomes)

	run := &model.Run{
		ID:         uuid.NewString(),
		Classifier: classifier,
		Source:     source,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Total:      len(outcomes),
		Labeled:    report.Labeled,
		Correct:    report.Correct,
		Results:    make([]model.RunResult, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		original, _ := o.Record.OriginalIndustry()
		res := model.RunResult{
			Row:               o.Record.Row,
			CompanyName:       o.Record.Name,
			Description:       o.Record.Description(),
			OriginalIndustry:  original,
			PredictedIndustry: o.Result.Industry,
			MatchedTerms:      o.Result.MatchedTerms,
			Confidence:        o.Result.Confidence,
		}
		if o.Err != nil {
			res.Error = o.Err.Error()
			run.Failed++
		}
		run.Results = append(run.Results, res)
	}

	return run
}
