// Package cli implements rosterctl, the operator command line for the rule
// catalog, compliance checks, availability queries and roster runs.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raviagarwal526/aioscrew/internal/service"
)

// Migrator applies and inspects schema migrations.
type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Version(ctx context.Context) (int64, error)
}

// Deps are the services the commands run against.
type Deps struct {
	Rules        service.RuleService
	Compliance   service.ComplianceService
	Availability service.AvailabilityService
	Roster       service.RosterService
	Disruptions  service.DisruptionService
	Export       service.ExportService
	Migrator     Migrator
}

// Loader builds Deps for one command run. The returned func releases them.
type Loader func(ctx context.Context) (*Deps, func(), error)

// NewRootCmd assembles the rosterctl command tree.
func NewRootCmd(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Operate the crew compliance and rostering engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		migrateCmd(load),
		rulesCmd(load),
		evaluateCmd(load),
		availableCmd(load),
		rosterCmd(load),
		disruptionsCmd(load),
	)
	return root
}

// withDeps runs fn with freshly loaded Deps.
func withDeps(cmd *cobra.Command, load Loader, fn func(ctx context.Context, deps *Deps) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps, release, err := load(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx, deps)
}

// dateFlag parses a YYYY-MM-DD flag value.
func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("--%s is required", name)
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a date (YYYY-MM-DD): %w", name, err)
	}
	return t, nil
}

// optionalDateFlag is dateFlag for flags that may be left unset.
func optionalDateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := dateFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
