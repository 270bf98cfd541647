package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/sector-sift/internal/cli"
	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single company",
		Long: `Classify one company from its name and description.

Examples:
  sift classify --name "Acme" --description "cloud CRM for small teams"
  sift classify --name "Acme" --description "..." --method llm
  sift classify --name "Acme" --description "..." --json`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("name", "n", "", "Company name")
	cmd.Flags().StringP("description", "d", "", "Company description")
	cmd.Flags().String("known-industry", "", "Industry already on record (used as an LLM hint)")
	cmd.Flags().StringP("method", "m", methodKeyword, "Classification method (keyword, llm)")
	cmd.Flags().Bool("json", false, "Print the result as JSON")

	_ = viper.BindPFlag("classify.method", cmd.Flags().Lookup("method"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	known, _ := cmd.Flags().GetString("known-industry")
	asJSON, _ := cmd.Flags().GetBool("json")
	method := viper.GetString("classify.method")

	if strings.TrimSpace(name) == "" && strings.TrimSpace(description) == "" {
		return common.NewUserError("Provide --name or --description", common.ErrInvalidConfig)
	}

	classifier, closer, err := newClassifier(method, nil)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closer.Close(); closeErr != nil {
			slog.Warn("Failed to close classifier", "error", closeErr)
		}
	}()

	in := model.ClassificationInput{Name: name, Description: description, KnownIndustry: known}
	result, err := classifier.Classify(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("failed to classify %q: %w", name, err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err = fmt.Fprintln(out, cli.RenderResult(name, result))
	return err
}
