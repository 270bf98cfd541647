package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sector-sift/internal/cli"
	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/dataset"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage saved batch runs",
	}

	cmd.AddCommand(runsListCmd())
	cmd.AddCommand(runsShowCmd())
	cmd.AddCommand(runsDeleteCmd())

	return cmd
}

func runsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				_, err = fmt.Fprintln(out, cli.FormatInfo("No saved runs. Use 'sift batch FILE --save' to keep one."))
				return err
			}
			_, err = fmt.Fprintln(out, cli.RenderRuns(runs))
			return err
		},
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum runs to show (0 for all)")

	return cmd
}

func runsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved run and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaryOnly, _ := cmd.Flags().GetBool("summary")
			csvOut, _ := cmd.Flags().GetBool("csv")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return runNotFound(args[0], err)
			}

			out := cmd.OutOrStdout()
			if csvOut {
				return dataset.WriteResultsCSV(out, run.Results)
			}

			if _, err := fmt.Fprintln(out, cli.RenderRunSummary(run)); err != nil {
				return err
			}
			if summaryOnly {
				return nil
			}
			_, err = fmt.Fprintln(out, cli.RenderResults(run.Results))
			return err
		},
	}

	cmd.Flags().Bool("summary", false, "Only show totals")
	cmd.Flags().Bool("csv", false, "Print results as CSV")

	return cmd
}

func runsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.DeleteRun(cmd.Context(), args[0]); err != nil {
				return runNotFound(args[0], err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted run "+args[0]))
			return err
		},
	}
}

func runNotFound(id string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("No run with ID %s", id), err)
	}
	return fmt.Errorf("failed to load run %s: %w", id, err)
}
