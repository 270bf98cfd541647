package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleTable_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		table   RuleTable
	}{
		{
			name: "valid table",
			table: RuleTable{
				{Label: "SaaS", Terms: []string{"saas", "subscription"}},
				{Label: "Manufacturing", Terms: []string{"factory"}},
			},
		},
		{
			name:    "nil table",
			table:   nil,
			wantErr: ErrNoRules,
		},
		{
			name:    "empty table",
			table:   RuleTable{},
			wantErr: ErrNoRules,
		},
		{
			name: "blank label",
			table: RuleTable{
				{Label: "  ", Terms: []string{"saas"}},
			},
			wantErr: ErrEmptyLabel,
		},
		{
			name: "duplicate label differs only by case",
			table: RuleTable{
				{Label: "SaaS", Terms: []string{"saas"}},
				{Label: "saas", Terms: []string{"cloud"}},
			},
			wantErr: ErrDuplicateLabel,
		},
		{
			name: "rule with only blank terms",
			table: RuleTable{
				{Label: "Gaming", Terms: []string{"", "  "}},
			},
			wantErr: ErrRuleWithoutTerms,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRuleTable_CloneIsIndependent(t *testing.T) {
	table := RuleTable{{Label: "SaaS", Terms: []string{"saas"}}}
	clone := table.Clone()

	clone[0].Terms[0] = "changed"
	clone[0].Label = "Other"

	assert.Equal(t, "saas", table[0].Terms[0])
	assert.Equal(t, "SaaS", table[0].Label)
	assert.Equal(t, []string{"SaaS"}, table.Labels())
}

func TestClampConfidence(t *testing.T) {
	assert.InDelta(t, 0.0, ClampConfidence(-0.5), 1e-9)
	assert.InDelta(t, 1.0, ClampConfidence(1.7), 1e-9)
	assert.InDelta(t, 0.25, ClampConfidence(0.25), 1e-9)
}
