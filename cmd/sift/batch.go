package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/sector-sift/internal/batch"
	"github.com/Veraticus/sector-sift/internal/cli"
	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/dataset"
	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/storage"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Classify every company in a CSV or XLSX file",
		Long: `Classify every row of a CSV or XLSX file and report accuracy against
the file's own industry column.

The file needs a "name" column. Domain, year founded, industry, locality,
country and linkedin url columns are folded into the description when present.

Examples:
  sift batch companies.csv
  sift batch companies.xlsx --method llm --concurrency 8
  sift batch companies.csv --taxonomy-from-data --save
  sift batch companies.csv --output results.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringP("method", "m", methodKeyword, "Classification method (keyword, llm)")
	cmd.Flags().IntP("concurrency", "c", batch.DefaultConcurrency, "Records classified in parallel")
	cmd.Flags().Bool("save", false, "Save the run to the database")
	cmd.Flags().Bool("taxonomy-from-data", false, "Restrict predictions to the industries found in the file")
	cmd.Flags().Bool("show-results", false, "Print every classified row")
	cmd.Flags().StringP("output", "o", "", "Write per-row results to a CSV file")

	_ = viper.BindPFlag("batch.method", cmd.Flags().Lookup("method"))
	_ = viper.BindPFlag("batch.concurrency", cmd.Flags().Lookup("concurrency"))

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	method := viper.GetString("batch.method")
	save, _ := cmd.Flags().GetBool("save")
	fromData, _ := cmd.Flags().GetBool("taxonomy-from-data")
	showResults, _ := cmd.Flags().GetBool("show-results")
	output, _ := cmd.Flags().GetString("output")

	records, err := dataset.Load(path)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not read %s", path), err)
	}
	if len(records) == 0 {
		return common.NewUserError(fmt.Sprintf("%s has no company rows", path), dataset.ErrEmptyDataset)
	}

	var labels []string
	if fromData {
		labels = dataset.Labels(records)
		if len(labels) == 0 {
			return common.NewUserError(fmt.Sprintf("%s has no industry labels to build a taxonomy from", path), dataset.ErrEmptyDataset)
		}
		slog.Info("Using taxonomy from data", "industries", len(labels))
	}

	classifier, closer, err := newClassifier(method, labels)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closer.Close(); closeErr != nil {
			slog.Warn("Failed to close classifier", "error", closeErr)
		}
	}()

	var store *storage.SQLiteStorage
	if save {
		if store, err = initStorage(cmd.Context()); err != nil {
			return err
		}
		defer closeStorage(store)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Classifying %d companies from %s", cli.SiftIcon, len(records), filepath.Base(path))))

	handler := cli.NewInterruptHandler(out)
	ctx := handler.HandleInterrupts(cmd.Context(), save)
	defer handler.Stop()

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(records), "Classifying companies...")
	runner := &batch.Runner{
		Classifier:  classifier,
		Logger:      slog.Default(),
		Concurrency: viper.GetInt("batch.concurrency"),
		OnProgress: func(_, _ int) {
			if addErr := bar.Add(1); addErr != nil {
				slog.Debug("Failed to advance progress bar", "error", addErr)
			}
		},
	}

	started := time.Now()
	outcomes, err := runner.Run(ctx, records)
	if err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError("Batch interrupted", err)
		}
		return fmt.Errorf("failed to classify %s: %w", path, err)
	}

	run := batch.NewRun(classifier.Name(), filepath.Base(path), started, outcomes)
	if store != nil {
		if err := store.SaveRun(cmd.Context(), run); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		slog.Info("Saved run", "id", run.ID)
	} else {
		run.ID = ""
	}

	fmt.Fprintln(out, cli.RenderRunSummary(run))
	if showResults {
		fmt.Fprintln(out, cli.RenderResults(run.Results))
	}

	if output != "" {
		if err := writeResults(output, run); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Results written to "+output))
	}

	return nil
}

func writeResults(path string, run *model.Run) (err error) {
	f, err := os.Create(path) //nolint:gosec // user-supplied output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := dataset.WriteResultsCSV(f, run.Results); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
