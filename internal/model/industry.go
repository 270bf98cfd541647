package model

import (
	"errors"
	"fmt"
	"strings"
)

// Rule table errors.
var (
	ErrNoRules          = errors.New("no rules configured")
	ErrEmptyLabel       = errors.New("industry label cannot be empty")
	ErrDuplicateLabel   = errors.New("duplicate industry label")
	ErrRuleWithoutTerms = errors.New("industry rule has no trigger terms")
)

// IndustryRule pairs an industry label with the trigger terms that vote for it.
type IndustryRule struct {
	Label string   `yaml:"label" json:"label"`
	Terms []string `yaml:"terms" json:"terms"`
}

// RuleTable is an ordered set of industry rules. Declaration order is significant:
// when two industries score equally, the one declared first wins.
type RuleTable []IndustryRule

// Validate checks that the table is usable by a classifier.
// Labels are compared case-insensitively. A rule must carry at least one
// non-blank term; normalization beyond trimming is left to the engine.
func (t RuleTable) Validate() error {
	if len(t) == 0 {
		return ErrNoRules
	}

	seen := make(map[string]int, len(t))
	for i, rule := range t {
		label := strings.TrimSpace(rule.Label)
		if label == "" {
			return fmt.Errorf("rule at index %d: %w", i, ErrEmptyLabel)
		}

		key := strings.ToLower(label)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q (index %d and %d)", ErrDuplicateLabel, label, prev, i)
		}
		seen[key] = i

		hasTerm := false
		for _, term := range rule.Terms {
			if strings.TrimSpace(term) != "" {
				hasTerm = true
				break
			}
		}
		if !hasTerm {
			return fmt.Errorf("%w: %q", ErrRuleWithoutTerms, label)
		}
	}

	return nil
}

// Labels returns the rule labels in declaration order.
func (t RuleTable) Labels() []string {
	labels := make([]string, len(t))
	for i, rule := range t {
		labels[i] = rule.Label
	}
	return labels
}

// Clone returns a deep copy so callers cannot mutate a table held by an engine.
func (t RuleTable) Clone() RuleTable {
	out := make(RuleTable, len(t))
	for i, rule := range t {
		terms := make([]string, len(rule.Terms))
		copy(terms, rule.Terms)
		out[i] = IndustryRule{Label: rule.Label, Terms: terms}
	}
	return out
}
