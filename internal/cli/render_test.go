package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/sector-sift/internal/model"
)

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "75%", FormatPercent(0.75))
	assert.Equal(t, "67%", FormatPercent(2.0/3.0))
	assert.Equal(t, "0%", FormatPercent(0))
}

func TestRenderResult(t *testing.T) {
	out := RenderResult("Acme", model.ClassificationResult{
		Industry:     "SaaS",
		Classifier:   "keyword",
		Confidence:   0.3,
		MatchedTerms: []string{"saas", "cloud software", "crm"},
	})
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "SaaS")
	assert.Contains(t, out, "30%")
	assert.Contains(t, out, "saas, cloud software, crm")

	out = RenderResult("", model.UnclassifiedResult("keyword"))
	assert.Contains(t, out, "Classification")
	assert.Contains(t, out, model.Unclassified)
	assert.NotContains(t, out, "Matched")
}

func TestRenderRunSummary(t *testing.T) {
	run := &model.Run{ID: "run-1", Classifier: "keyword", Total: 100, Labeled: 40, Correct: 30, Failed: 2}
	out := RenderRunSummary(run)
	assert.Contains(t, out, "100 records classified with keyword")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "30 of 40")
	assert.Contains(t, out, "2 records failed")
	assert.Contains(t, out, "run-1")

	out = RenderRunSummary(&model.Run{Classifier: "llm", Total: 3})
	assert.Contains(t, out, "accuracy not computed")
}

func TestRenderTables(t *testing.T) {
	results := RenderResults([]model.RunResult{
		{Row: 2, CompanyName: "ibm", OriginalIndustry: "IT Services", PredictedIndustry: "IT Services", Confidence: 0.2},
		{Row: 3, CompanyName: "broken", Error: "timeout"},
	})
	assert.Contains(t, results, "Predicted")
	assert.Contains(t, results, "ibm")
	assert.Contains(t, results, "timeout")
	assert.GreaterOrEqual(t, len(strings.Split(results, "\n")), 3)

	runs := RenderRuns([]model.Run{{ID: "abc", Classifier: "keyword", Source: "c.csv", Total: 4, StartedAt: time.Now()}})
	assert.Contains(t, runs, "abc")
	assert.Contains(t, runs, "c.csv")

	rules := RenderRules(model.RuleTable{{Label: "SaaS", Terms: []string{"saas", "crm"}}})
	assert.Contains(t, rules, "SaaS")
	assert.Contains(t, rules, "saas, crm")
}
