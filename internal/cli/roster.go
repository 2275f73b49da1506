package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

func rosterCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Generate, publish and export rosters",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a draft roster for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateFlag(cmd, "start")
			if err != nil {
				return err
			}
			end, err := dateFlag(cmd, "end")
			if err != nil {
				return err
			}

			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				result, err := deps.Roster.GenerateDraft(ctx, domain.GenerateRosterParams{
					PeriodStart: start,
					PeriodEnd:   end,
				})
				if err != nil {
					return fmt.Errorf("generate roster: %w", err)
				}
				printGeneration(cmd, result)
				return nil
			})
		},
	}
	generate.Flags().String("start", "", "Period start, YYYY-MM-DD")
	generate.Flags().String("end", "", "Period end, YYYY-MM-DD")

	publish := &cobra.Command{
		Use:   "publish VERSION_ID",
		Short: "Publish an active draft version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid version ID %q", args[0])
			}
			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				v, err := deps.Roster.Publish(ctx, id)
				if err != nil {
					return fmt.Errorf("publish %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s published %s for %s to %s\n",
					okColor.Sprint("✓"), v.ID, formatDate(v.PeriodStart), formatDate(v.PeriodEnd))
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export VERSION_ID",
		Short: "Write a JSON snapshot of a version to storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid version ID %q", args[0])
			}
			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				key, err := deps.Export.ExportVersion(ctx, id)
				if err != nil {
					return fmt.Errorf("export %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s exported to %s\n", okColor.Sprint("✓"), key)
				return nil
			})
		},
	}

	cmd.AddCommand(generate, publish, export)
	return cmd
}

func printGeneration(cmd *cobra.Command, result *domain.GenerateRosterResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s draft %s: %d assignment(s), %d violation(s)\n",
		okColor.Sprint("✓"), result.VersionID, len(result.Assignments), result.ViolationCount)

	if len(result.Assignments) > 0 {
		fmt.Fprintln(out)
		tw := newTable(out)
		fmt.Fprintln(tw, "PAIRING\tCREW\tSTART\tEND")
		for _, a := range result.Assignments {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.PairingID, a.CrewID, formatDate(a.StartDate), formatDate(a.EndDate))
		}
		tw.Flush()
	}

	if len(result.UnassignedPairingIDs) > 0 {
		fmt.Fprintf(out, "\n%s %d pairing(s) left unassigned: %v\n",
			warnColor.Sprint("!"), len(result.UnassignedPairingIDs), result.UnassignedPairingIDs)
	}
}
