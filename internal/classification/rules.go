package classification

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/sector-sift/internal/model"
)

// ruleFile is the on-disk layout of a rule table. Rules are a YAML sequence
// rather than a mapping so declaration order survives decoding.
type ruleFile struct {
	Rules model.RuleTable `yaml:"rules"`
}

// ParseRules decodes and validates a YAML rule table:
//
//	rules:
//	  - label: SaaS
//	    terms: [saas, subscription, cloud software]
func ParseRules(r io.Reader) (model.RuleTable, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file ruleFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.ErrNoRules
		}
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}

	if err := file.Rules.Validate(); err != nil {
		return nil, err
	}
	return file.Rules, nil
}

// LoadRules reads a rule table from a YAML file.
func LoadRules(path string) (model.RuleTable, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := ParseRules(f)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return table, nil
}

// WriteRules encodes a rule table in the format ParseRules reads.
func WriteRules(w io.Writer, table model.RuleTable) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ruleFile{Rules: table}); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return enc.Close()
}

// RulesFromLabels builds a table from an existing taxonomy, such as the
// distinct values of a dataset's industry column. Each label becomes a rule
// whose only trigger is the label text. Blank and repeated labels are skipped;
// first-seen order is kept.
func RulesFromLabels(labels []string) model.RuleTable {
	table := make(model.RuleTable, 0, len(labels))
	seen := make(map[string]bool, len(labels))

	for _, label := range labels {
		label = strings.TrimSpace(label)
		key := strings.ToLower(label)
		if label == "" || key == "n/a" || seen[key] || normalizeTerm(label) == "" {
			continue
		}
		seen[key] = true
		table = append(table, model.IndustryRule{
			Label: label,
			Terms: []string{key},
		})
	}

	return table
}
