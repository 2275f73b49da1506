package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
					if err := deps.Migrator.Up(ctx); err != nil {
						return fmt.Errorf("migrate up: %w", err)
					}
					return printVersion(ctx, cmd, deps)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
					if err := deps.Migrator.Down(ctx); err != nil {
						return fmt.Errorf("migrate down: %w", err)
					}
					return printVersion(ctx, cmd, deps)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(cmd, load, func(ctx context.Context, deps *Deps) error {
					return printVersion(ctx, cmd, deps)
				})
			},
		},
	)
	return cmd
}

func printVersion(ctx context.Context, cmd *cobra.Command, deps *Deps) error {
	v, err := deps.Migrator.Version(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
	return nil
}
