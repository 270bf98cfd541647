package web

import (
	"github.com/Veraticus/sector-sift/internal/batch"
	"github.com/Veraticus/sector-sift/internal/model"
)

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	KnownIndustry string `json:"known_industry"`
	Method        string `json:"method"`
}

// BatchResponse is returned by POST /api/v1/batch. RunID is set only when the
// run was saved.
type BatchResponse struct {
	RunID      string            `json:"run_id,omitempty"`
	Classifier string            `json:"classifier"`
	Source     string            `json:"source"`
	Results    []model.RunResult `json:"results"`
	Report     batch.Report      `json:"report"`
	Total      int               `json:"total"`
	Failed     int               `json:"failed"`
}

// RulesListResponse lists the active keyword rules.
type RulesListResponse struct {
	Rules model.RuleTable `json:"rules"`
	Total int             `json:"total"`
}

// RunsListResponse lists saved runs without their results.
type RunsListResponse struct {
	Runs  []RunSummary `json:"runs"`
	Total int          `json:"total"`
}

// RunSummary is a run plus its computed accuracy.
type RunSummary struct {
	model.Run
	Accuracy float64 `json:"accuracy"`
}

func summarize(run model.Run) RunSummary {
	return RunSummary{Run: run, Accuracy: run.Accuracy()}
}

// formData feeds the HTML template.
type formData struct {
	Result      *model.ClassificationResult
	Name        string
	Description string
	Method      string
	Error       string
	Methods     []string
}
