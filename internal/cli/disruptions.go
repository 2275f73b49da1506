package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

func disruptionsCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disruptions",
		Short: "Inspect operational disruptions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List disruptions, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := optionalDateFlag(cmd, "start")
			if err != nil {
				return err
			}
			end, err := optionalDateFlag(cmd, "end")
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")

			return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
				disruptions, err := deps.Disruptions.List(ctx, domain.DisruptionFilter{
					StartDate: start,
					EndDate:   end,
					Status:    domain.DisruptionStatus(status),
				})
				if err != nil {
					return fmt.Errorf("list disruptions: %w", err)
				}
				printDisruptions(cmd, disruptions)
				return nil
			})
		},
	}
	list.Flags().String("start", "", "Earliest start day, YYYY-MM-DD")
	list.Flags().String("end", "", "Latest start day, YYYY-MM-DD")
	list.Flags().StringP("status", "s", "", "open, acknowledged or resolved")

	cmd.AddCommand(list)
	return cmd
}

func printDisruptions(cmd *cobra.Command, disruptions []domain.Disruption) {
	out := cmd.OutOrStdout()
	if len(disruptions) == 0 {
		fmt.Fprintln(out, "No disruptions found")
		return
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "STARTED\tTYPE\tSEVERITY\tSTATUS\tCREW\tID")
	for i := range disruptions {
		d := &disruptions[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			d.Start.Format("2006-01-02 15:04"), label(d.Type), d.Severity, statusText(d.Status.String()),
			len(d.AffectedCrewIDs), dimColor.Sprint(d.ID))
	}
	tw.Flush()
}
