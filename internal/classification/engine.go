// Package classification provides the keyword-based industry classification engine.
package classification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/Veraticus/sector-sift/internal/model"
)

// EngineName identifies results produced by the keyword engine.
const EngineName = "keyword"

// termRef points a dictionary entry back at the rule term it came from.
type termRef struct {
	rule int
	term int
}

// compiledRule is an IndustryRule with deduplicated, normalized terms.
type compiledRule struct {
	label     string
	labelText string   // normalized label, used for the optional boost
	terms     []string // display form, declaration order
}

// Engine classifies text by counting which industry trigger terms it contains.
// An Engine is immutable after NewEngine returns and is safe for concurrent use.
type Engine struct {
	matcher    *ahocorasick.Matcher
	logger     *slog.Logger
	rules      []compiledRule
	postings   [][]termRef // dictionary index -> rule terms
	labelBoost float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLabelBoost adds boost to the confidence when the winning industry's own
// label also appears in the text. The result is still clamped to [0,1].
func WithLabelBoost(boost float64) Option {
	return func(e *Engine) {
		e.labelBoost = boost
	}
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine compiles a rule table into a matcher. The table is copied, so later
// changes to it have no effect. An empty table is a configuration error.
func NewEngine(table model.RuleTable, opts ...Option) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	dictionary := make([]string, 0, len(table)*8)
	index := make(map[string]int)

	for ri, rule := range table.Clone() {
		compiled := compiledRule{
			label:     strings.TrimSpace(rule.Label),
			labelText: normalizeTerm(rule.Label),
		}

		seen := make(map[string]bool, len(rule.Terms))
		for _, term := range rule.Terms {
			normalized := normalizeTerm(term)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true

			ti := len(compiled.terms)
			compiled.terms = append(compiled.terms, strings.TrimSpace(normalized))

			di, ok := index[normalized]
			if !ok {
				di = len(dictionary)
				index[normalized] = di
				dictionary = append(dictionary, normalized)
				e.postings = append(e.postings, nil)
			}
			e.postings[di] = append(e.postings[di], termRef{rule: ri, term: ti})
		}

		if len(compiled.terms) == 0 {
			return nil, fmt.Errorf("invalid rule table: %w: %q", model.ErrRuleWithoutTerms, compiled.label)
		}
		e.rules = append(e.rules, compiled)
	}

	e.matcher = ahocorasick.NewStringMatcher(dictionary)

	e.logger.Debug("keyword engine initialized",
		"rules", len(e.rules),
		"terms", len(dictionary))

	return e, nil
}

// Name implements service.Classifier.
func (e *Engine) Name() string {
	return EngineName
}

// Classify implements service.Classifier. It never returns an error; every
// input maps to a result.
func (e *Engine) Classify(_ context.Context, in model.ClassificationInput) (model.ClassificationResult, error) {
	return e.Score(in), nil
}

// Score classifies the input. For each industry the score is the fraction of
// its trigger terms found in the text; the highest non-zero score wins, and
// ties go to the industry declared first. No match yields Unclassified with
// zero confidence.
func (e *Engine) Score(in model.ClassificationInput) model.ClassificationResult {
	text := normalizeText(in.Text())

	hits := e.matcher.MatchThreadSafe([]byte(text))
	if len(hits) == 0 {
		return model.UnclassifiedResult(EngineName)
	}

	matched := make([][]bool, len(e.rules))
	for _, hit := range hits {
		if hit < 0 || hit >= len(e.postings) {
			continue
		}
		for _, ref := range e.postings[hit] {
			if matched[ref.rule] == nil {
				matched[ref.rule] = make([]bool, len(e.rules[ref.rule].terms))
			}
			matched[ref.rule][ref.term] = true
		}
	}

	best := -1
	bestScore := 0.0
	for i, rule := range e.rules {
		if matched[i] == nil {
			continue
		}
		count := 0
		for _, ok := range matched[i] {
			if ok {
				count++
			}
		}
		score := float64(count) / float64(len(rule.terms))
		// Strictly greater keeps the earlier rule on ties.
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return model.UnclassifiedResult(EngineName)
	}

	winner := e.rules[best]
	terms := make([]string, 0, len(winner.terms))
	for ti, ok := range matched[best] {
		if ok {
			terms = append(terms, winner.terms[ti])
		}
	}

	confidence := bestScore
	if e.labelBoost > 0 && winner.labelText != "" && strings.Contains(text, winner.labelText) {
		confidence += e.labelBoost
	}

	return model.ClassificationResult{
		Industry:     winner.label,
		Classifier:   EngineName,
		Confidence:   model.ClampConfidence(confidence),
		MatchedTerms: terms,
	}
}

// Rules returns a copy of the compiled table in declaration order, with terms
// in their normalized display form.
func (e *Engine) Rules() model.RuleTable {
	out := make(model.RuleTable, len(e.rules))
	for i, rule := range e.rules {
		terms := make([]string, len(rule.terms))
		copy(terms, rule.terms)
		out[i] = model.IndustryRule{Label: rule.label, Terms: terms}
	}
	return out
}

// Labels returns the industry labels in declaration order.
func (e *Engine) Labels() []string {
	labels := make([]string, len(e.rules))
	for i, rule := range e.rules {
		labels[i] = rule.label
	}
	return labels
}
