package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/model"
)

// SaveRun stores a run and its results in one transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, classifier, source, total, labeled, correct, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Classifier, run.Source, run.Total, run.Labeled, run.Correct, run.Failed,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_results (
			run_id, position, source_row, company_name, description, original_industry,
			predicted_industry, confidence, matched_terms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, res := range run.Results {
		terms := res.MatchedTerms
		if terms == nil {
			terms = []string{}
		}
		termsJSON, err := json.Marshal(terms)
		if err != nil {
			return fmt.Errorf("failed to marshal matched terms: %w", err)
		}

		if _, err := stmt.ExecContext(ctx,
			run.ID, i, res.Row, res.CompanyName, res.Description, res.OriginalIndustry,
			res.PredictedIndustry, res.Confidence, string(termsJSON), res.Error,
		); err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun returns a run with its results, or common.ErrNotFound.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, classifier, source, total, labeled, correct, failed, started_at, finished_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	results, err := s.GetRunResults(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Results = results

	return &run, nil
}

// ListRuns returns run summaries, newest first, without their results.
// A non-positive limit returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, classifier, source, total, labeled, correct, failed, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRunResults returns the results of a run in their original order.
func (s *SQLiteStorage) GetRunResults(ctx context.Context, id string) ([]model.RunResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_row, company_name, description, original_industry, predicted_industry,
			confidence, matched_terms, error
		FROM run_results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []model.RunResult{}
	for rows.Next() {
		var res model.RunResult
		var termsJSON string
		if err := rows.Scan(&res.Row, &res.CompanyName, &res.Description, &res.OriginalIndustry,
			&res.PredictedIndustry, &res.Confidence, &termsJSON, &res.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run result: %w", err)
		}
		if err := json.Unmarshal([]byte(termsJSON), &res.MatchedTerms); err != nil {
			return nil, fmt.Errorf("failed to decode matched terms: %w", err)
		}
		if len(res.MatchedTerms) == 0 {
			res.MatchedTerms = nil
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run results: %w", err)
	}

	return results, nil
}

// DeleteRun removes a run and its results, or returns common.ErrNotFound.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_results WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run results: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.Run, error) {
	var run model.Run
	err := row.Scan(&run.ID, &run.Classifier, &run.Source, &run.Total, &run.Labeled,
		&run.Correct, &run.Failed, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("failed to scan run: %w", err)
	}
	return run, nil
}
