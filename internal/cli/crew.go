package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

func evaluateCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate CREW_ID",
		Short: "Check a crew member against the active rule catalog or selected rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := optionalDateFlag(cmd, "as-of")
			if err != nil {
				return err
			}
			jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
			rawRules, _ := cmd.Flags().GetStringSlice("rule")

			params := domain.EvaluateParams{CrewID: args[0], Jurisdiction: jurisdiction}
			if asOf != nil {
				params.AsOf = *asOf
			}
			for _, raw := range rawRules {
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("--rule %q: not a rule ID", raw)
				}
				params.RuleIDs = append(params.RuleIDs, id)
			}

			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				result, err := deps.Compliance.Evaluate(ctx, params)
				if err != nil {
					return fmt.Errorf("evaluate %s: %w", args[0], err)
				}
				printEvaluation(cmd, args[0], result)
				return nil
			})
		},
	}
	cmd.Flags().String("as-of", "", "Evaluation date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("jurisdiction", "j", "", "Rule catalog to use (default: configured jurisdiction)")
	cmd.Flags().StringSliceP("rule", "r", nil, "Check only these stored rule IDs (repeatable)")
	return cmd
}

func printEvaluation(cmd *cobra.Command, crewID string, result *domain.EvaluationResult) {
	out := cmd.OutOrStdout()
	if len(result.Evaluations) == 0 && len(result.Failures) == 0 {
		fmt.Fprintf(out, "No rules evaluated for %s\n", crewID)
		return
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "RULE TYPE\tCURRENT\tLIMIT\tRESULT")
	for i := range result.Evaluations {
		e := &result.Evaluations[i]
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%s\n",
			label(e.RuleType.String()), e.CurrentValue, e.LimitValue, severityText(e.SeverityValue()))
	}
	tw.Flush()

	if n := result.ViolationCount(); n > 0 {
		fmt.Fprintf(out, "\n%s %s has %d violation(s)\n", criticalColor.Sprint("✗"), crewID, n)
	} else {
		fmt.Fprintf(out, "\n%s %s is compliant\n", okColor.Sprint("✓"), crewID)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(out, "%s rule %s was evaluated but not recorded: %v\n", warnColor.Sprint("!"), f.RuleID, f.Err)
	}
}

func availableCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "available",
		Short: "List crew available over a date range",
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
			base, _ := cmd.Flags().GetString("base")
			quals, _ := cmd.Flags().GetStringSlice("qualification")

			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				crew, err := deps.Availability.FindAvailable(ctx, domain.FindAvailableParams{
					Start:          start,
					End:            end,
					Base:           base,
					Qualifications: quals,
				})
				if err != nil {
					return fmt.Errorf("find available crew: %w", err)
				}
				printCrew(cmd, crew)
				return nil
			})
		},
	}
	cmd.Flags().String("start", "", "First day, YYYY-MM-DD")
	cmd.Flags().String("end", "", "Last day, YYYY-MM-DD")
	cmd.Flags().StringP("base", "b", "", "Only crew at this base")
	cmd.Flags().StringSliceP("qualification", "q", nil, "Required qualification code (repeatable)")
	return cmd
}

func printCrew(cmd *cobra.Command, crew []domain.CrewMember) {
	out := cmd.OutOrStdout()
	if len(crew) == 0 {
		fmt.Fprintln(out, "No crew available")
		return
	}

	fmt.Fprintf(out, "Found %d crew member(s):\n\n", len(crew))
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tBASE")
	for i := range crew {
		c := &crew[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.FullName(), label(c.Role), c.Base)
	}
	tw.Flush()
}
