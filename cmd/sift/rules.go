package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/sector-sift/internal/classification"
	"github.com/Veraticus/sector-sift/internal/cli"
	"github.com/Veraticus/sector-sift/internal/common"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect keyword rule tables",
		Long: `Inspect keyword rule tables.

Rule files list industries in tie-break order:

  rules:
    - label: SaaS
      terms: [saas, cloud software, crm]
    - label: FinTech
      terms: [fintech, payment]`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesValidateCmd())
	cmd.AddCommand(rulesExportCmd())

	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadRules()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRules(table))
			return err
		},
	}
}

func rulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a rule file can be loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := classification.LoadRules(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("%s is not a valid rule file", args[0]), err)
			}
			if _, err := classification.NewEngine(table); err != nil {
				return common.NewUserError(fmt.Sprintf("%s is not a valid rule file", args[0]), err)
			}

			terms := 0
			for _, rule := range table {
				terms += len(rule.Terms)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(),
				cli.FormatSuccess(fmt.Sprintf("%s: %d industries, %d terms", args[0], len(table), terms)))
			return err
		},
	}
}

func rulesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the active rules as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadRules()
			if err != nil {
				return err
			}
			return classification.WriteRules(cmd.OutOrStdout(), table)
		},
	}
}
