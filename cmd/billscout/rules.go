package main

import (
	"github.com/Veraticus/billscout/internal/cli"
	"github.com/Veraticus/billscout/internal/config"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the active classification rules",
		Long: `Show the rule table in evaluation order. With --yaml the table is
printed in the rules-file format, ready to edit and pass back via --rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asYAML, _ := cmd.Flags().GetBool("yaml")

			rs, err := loadRuleSet()
			if err != nil {
				return err
			}

			if asYAML {
				return config.EncodeRuleSet(cmd.OutOrStdout(), rs)
			}
			return cli.WriteRulesTable(cmd.OutOrStdout(), rs.Rules)
		},
	}

	cmd.Flags().Bool("yaml", false, "Print the rules as YAML")

	return cmd
}
