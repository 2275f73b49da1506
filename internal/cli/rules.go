package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/rulepack"
)

func rulesCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and seed the regulatory rule catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the active rules of a jurisdiction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				rules, err := deps.Rules.ListActive(ctx, jurisdiction)
				if err != nil {
					return fmt.Errorf("list rules: %w", err)
				}
				printRules(cmd, rules)
				return nil
			})
		},
	}
	list.Flags().StringP("jurisdiction", "j", "", "Jurisdiction code (default: configured jurisdiction)")

	seed := &cobra.Command{
		Use:   "seed [jurisdiction...]",
		Short: "Upsert the built-in rule packs (all jurisdictions when none are named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				stored, err := rulepack.Seed(ctx, deps.Rules, args...)
				if err != nil {
					return fmt.Errorf("seed rules: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s seeded %d rule(s)\n", okColor.Sprint("✓"), len(stored))
				printRules(cmd, stored)
				return nil
			})
		},
	}

	cmd.AddCommand(list, seed)
	return cmd
}

func printRules(cmd *cobra.Command, rules []domain.RegulatoryRule) {
	out := cmd.OutOrStdout()
	if len(rules) == 0 {
		fmt.Fprintln(out, "No rules found")
		return
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "CODE\tJURISDICTION\tTYPE\tLIMIT\tNAME")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g %s\t%s\n",
			r.Code, r.Jurisdiction, label(r.Type.String()), r.LimitValue, r.LimitUnit, r.Name)
	}
	tw.Flush()
}
