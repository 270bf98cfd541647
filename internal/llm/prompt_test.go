package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sector-sift/internal/model"
)

func TestDefaults(t *testing.T) {
	industries := DefaultIndustries()
	assert.Contains(t, industries, "information technology and services")
	assert.Equal(t, otherLabel, industries[len(industries)-1])

	examples := DefaultExamples()
	require.Len(t, examples, 5)
	for _, ex := range examples {
		assert.Contains(t, industries, ex.Label)
	}
}

func TestExamplesFor(t *testing.T) {
	base := DefaultExamples()

	tests := []struct {
		name    string
		known   string
		wantLen int
	}{
		{name: "no hint", known: "", wantLen: len(base)},
		{name: "other is ignored", known: "other", wantLen: len(base)},
		{name: "duplicate label", known: "Retail", wantLen: len(base)},
		{name: "new label prepended", known: "banking", wantLen: len(base) + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.ClassificationInput{Name: "Chase", Description: "Domain: chase.com.", KnownIndustry: tt.known}
			got := examplesFor(in, base)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > len(base) {
				assert.Equal(t, "banking", got[0].Label)
				assert.Equal(t, "Company: Chase. Description: Domain: chase.com.", got[0].Input)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	in := model.ClassificationInput{Name: "Walmart", Description: "Domain: walmart.com."}
	prompt := buildPrompt(in, []string{"retail", "banking"}, DefaultExamples()[:1])

	assert.Contains(t, prompt, "categories: retail, banking.")
	assert.Contains(t, prompt, "Output: information technology and services\n")
	assert.True(t, strings.HasSuffix(prompt, "Input: Company: Walmart. Description: Domain: walmart.com.\nOutput:"))
}
