package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/storage"
)

// setConfig overrides a viper key for the duration of a test.
func setConfig(t *testing.T, key string, value any) {
	t.Helper()
	old := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, old) })
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	want := []string{"batch", "classify", "rules", "runs", "serve", "version"}

	var got []string
	for _, cmd := range rootCmd.Commands() {
		got = append(got, cmd.Name())
	}

	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestNewClassifier(t *testing.T) {
	setConfig(t, "rules.path", "")
	setConfig(t, "llm.api_key", "")
	setConfig(t, "llm.provider", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	t.Run("keyword", func(t *testing.T) {
		c, closer, err := newClassifier("Keyword", nil)
		require.NoError(t, err)
		defer func() { _ = closer.Close() }()
		assert.Equal(t, methodKeyword, c.Name())
	})

	t.Run("keyword with labels from data", func(t *testing.T) {
		c, closer, err := newClassifier(methodKeyword, []string{"Retail", "Banking"})
		require.NoError(t, err)
		defer func() { _ = closer.Close() }()

		result, err := c.Classify(context.Background(), model.ClassificationInput{Description: "a regional banking group"})
		require.NoError(t, err)
		assert.Equal(t, "Banking", result.Industry)
	})

	t.Run("llm without api key", func(t *testing.T) {
		_, _, err := newClassifier(methodLLM, nil)
		require.ErrorIs(t, err, common.ErrMissingConfig)

		var userErr *common.UserError
		require.ErrorAs(t, err, &userErr)
		assert.Contains(t, userErr.UserMessage, "GEMINI_API_KEY")
	})

	t.Run("unknown method", func(t *testing.T) {
		_, _, err := newClassifier("magic", nil)
		require.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestClassifyCommand(t *testing.T) {
	setConfig(t, "rules.path", "")

	out, err := execute(t, classifyCmd(),
		"--name", "Acme", "--description", "cloud software saas crm", "--json")
	require.NoError(t, err)

	var result model.ClassificationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "SaaS", result.Industry)
	assert.InDelta(t, 0.3, result.Confidence, 1e-9)
	assert.Equal(t, []string{"saas", "cloud software", "crm"}, result.MatchedTerms)
}

func TestClassifyCommand_RequiresInput(t *testing.T) {
	_, err := execute(t, classifyCmd())
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	setConfig(t, "rules.path", "")
	setConfig(t, "database.path", filepath.Join(dir, "sift.db"))

	input := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"Name,Industry\nAcme SaaS,SaaS\nWidget Works,Manufacturing\nNobody,\n"), 0o600))
	output := filepath.Join(dir, "results.csv")

	out, err := execute(t, batchCmd(), input, "--save", "--output", output, "--concurrency", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "3 records classified with keyword")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Results written to")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(written)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2,Acme SaaS,"))

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "sift.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "companies.csv", runs[0].Source)
	assert.Equal(t, 3, runs[0].Total)
	assert.Equal(t, 2, runs[0].Labeled)
	assert.Equal(t, 2, runs[0].Correct)
}

func TestBatchCommand_TaxonomyFromDataNeedsLabels(t *testing.T) {
	input := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(input, []byte("Name\nAcme\n"), 0o600))

	_, err := execute(t, batchCmd(), input, "--taxonomy-from-data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no industry labels")
}

func TestBatchCommand_MissingFile(t *testing.T) {
	_, err := execute(t, batchCmd(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestRulesValidateCommand(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(
		"rules:\n  - label: SaaS\n    terms: [saas, crm]\n  - label: FinTech\n    terms: [payment]\n"), 0o600))

	out, err := execute(t, rulesValidateCmd(), valid)
	require.NoError(t, err)
	assert.Contains(t, out, "2 industries, 3 terms")

	invalid := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("rules:\n  - label: SaaS\n    terms: []\n"), 0o600))

	_, err = execute(t, rulesValidateCmd(), invalid)
	require.Error(t, err)
}

func TestRulesListCommand_UsesConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - label: Gaming\n    terms: [esports]\n"), 0o600))
	setConfig(t, "rules.path", path)

	out, err := execute(t, rulesListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Gaming")
	assert.NotContains(t, out, "FinTech")
}

func TestRunsCommands(t *testing.T) {
	dir := t.TempDir()
	setConfig(t, "database.path", filepath.Join(dir, "sift.db"))

	out, err := execute(t, runsListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No saved runs")

	_, err = execute(t, runsShowCmd(), "does-not-exist")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = execute(t, runsDeleteCmd(), "does-not-exist")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.Equal(t, "sift version dev\n", out)
}
