package cli

import (
	"context"
	"database/sql"
	"io"

	"github.com/raviagarwal526/aioscrew/internal"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// DefaultLoader connects to the configured database and storage and builds
// the same services the server runs. Logs go to stderr.
func DefaultLoader(logOutput io.Writer) Loader {
	return func(ctx context.Context) (*Deps, func(), error) {
		cfg, err := internal.NewConfig()
		if err != nil {
			return nil, nil, err
		}
		logger := internal.NewLogger(logOutput, cfg.Env, cfg.LogLevel)

		db, err := internal.OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		st, err := internal.NewStorage(cfg, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		services := internal.NewServices(cfg, repository.NewStore(db), st, logger)
		deps := &Deps{
			Rules:        services.Rules,
			Compliance:   services.Compliance,
			Availability: services.Availability,
			Roster:       services.Roster,
			Disruptions:  services.Disruptions,
			Export:       services.Export,
			Migrator:     sqlMigrator{db: db},
		}
		return deps, func() { db.Close() }, nil
	}
}

// sqlMigrator runs the embedded goose migrations.
type sqlMigrator struct {
	db *sql.DB
}

func (m sqlMigrator) Up(ctx context.Context) error { return internal.RunMigrations(m.db) }

func (m sqlMigrator) Down(ctx context.Context) error { return internal.RollbackMigration(m.db) }

func (m sqlMigrator) Version(ctx context.Context) (int64, error) {
	return internal.MigrationVersion(ctx, m.db)
}
