package model

import "time"

// Run is a persisted batch classification over a data file.
type Run struct {
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	ID         string      `json:"id"`
	Classifier string      `json:"classifier"`
	Source     string      `json:"source"`
	Results    []RunResult `json:"results,omitempty"`
	Total      int         `json:"total"`
	Labeled    int         `json:"labeled"`
	Correct    int         `json:"correct"`
	Failed     int         `json:"failed"`
}

// Accuracy is Correct/Labeled, or 0 when nothing was labeled.
func (r *Run) Accuracy() float64 {
	if r.Labeled == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Labeled)
}

// RunResult is one classified row of a run.
type RunResult struct {
	CompanyName       string   `json:"company_name"`
	Description       string   `json:"description"`
	OriginalIndustry  string   `json:"original_industry,omitempty"`
	PredictedIndustry string   `json:"predicted_industry"`
	Error             string   `json:"error,omitempty"`
	MatchedTerms      []string `json:"matched_terms,omitempty"`
	Confidence        float64  `json:"confidence"`
	Row               int      `json:"row"`
}
