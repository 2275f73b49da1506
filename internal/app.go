package internal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/raviagarwal526/aioscrew/internal/repository"
	"github.com/raviagarwal526/aioscrew/internal/service"
	"github.com/raviagarwal526/aioscrew/internal/storage"
	"github.com/raviagarwal526/aioscrew/internal/worker"
)

// OpenDB opens and pings the Postgres database through the pgx driver.
func OpenDB(ctx context.Context, cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

// NewStorage builds the object store selected by STORAGE_PROVIDER.
func NewStorage(cfg *Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case storage.ProviderS3:
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			UsePathStyle:    cfg.S3UsePathStyle,
			PublicURL:       cfg.S3PublicURL,
		}, logger)
	default:
		return storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
	}
}

// WorkerConfig derives the job worker settings from cfg.
func (c *Config) WorkerConfig() worker.Config {
	wc := worker.DefaultConfig()
	wc.Concurrency = c.WorkerConcurrency
	wc.PollInterval = c.WorkerPollInterval
	wc.JobTimeout = c.WorkerJobTimeout
	if wc.StaleJobThreshold < 2*wc.JobTimeout {
		wc.StaleJobThreshold = 2 * wc.JobTimeout
	}
	return wc
}

// Services groups the application services shared by the server and CLI.
type Services struct {
	Rules        service.RuleService
	Compliance   service.ComplianceService
	Availability service.AvailabilityService
	Roster       service.RosterService
	Disruptions  service.DisruptionService
	Export       service.ExportService
}

// NewServices wires the services on top of store and st.
func NewServices(cfg *Config, store repository.Store, st storage.Storage, logger *slog.Logger) *Services {
	rules := service.NewRuleService(store, cfg.DefaultJurisdiction, logger)
	compliance := service.NewComplianceService(store, rules, logger)
	availability := service.NewAvailabilityService(store, logger)
	roster := service.NewRosterService(store, rules, compliance, availability, service.RosterServiceConfig{
		ExclusivePool:         cfg.RosterExclusivePool,
		RequireQualifications: cfg.RosterRequireQualifications,
	}, logger)

	return &Services{
		Rules:        rules,
		Compliance:   compliance,
		Availability: availability,
		Roster:       roster,
		Disruptions:  service.NewDisruptionService(store, logger),
		Export:       service.NewExportService(store, roster, st, logger),
	}
}
