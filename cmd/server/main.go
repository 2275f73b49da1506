package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raviagarwal526/aioscrew/internal"
	"github.com/raviagarwal526/aioscrew/internal/handler"
	"github.com/raviagarwal526/aioscrew/internal/jobs"
	"github.com/raviagarwal526/aioscrew/internal/metrics"
	"github.com/raviagarwal526/aioscrew/internal/middleware"
	"github.com/raviagarwal526/aioscrew/internal/repository"
	"github.com/raviagarwal526/aioscrew/internal/telemetry"
	"github.com/raviagarwal526/aioscrew/internal/worker"
)

var version = "dev"

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "aioscrew",
		ServiceVersion: version,
		Environment:    cfg.Env,
		Exporter:       cfg.TraceExporter,
	})
	if err != nil {
		return fmt.Errorf("tracing initialization failed: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracer shutdown error", "error", err)
		}
	}()

	db, err := internal.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	store := repository.NewStore(db)

	exportStorage, err := internal.NewStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	logger.Info("Storage ready", "provider", cfg.StorageProvider)

	services := internal.NewServices(cfg, store, exportStorage, logger)

	// ==========================================================================
	// Background worker
	// ==========================================================================

	workerCtx, stopWorkerCtx := context.WithCancel(ctx)
	defer stopWorkerCtx()

	var jobWorker *worker.Worker
	if cfg.WorkerEnabled {
		jobWorker, err = worker.New(store, cfg.WorkerConfig(), logger)
		if err != nil {
			return fmt.Errorf("worker initialization failed: %w", err)
		}
		jobWorker.Register(jobs.NewExportRosterHandler(services.Export, logger))
		jobWorker.Start(workerCtx)
	}

	// ==========================================================================
	// Middleware
	// ==========================================================================

	isSecure := cfg.Env != "development"
	requestLogging := middleware.NewRequestLoggingMiddleware(logger)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	if !metricsAuth.Enabled() {
		logger.Warn("METRICS_USERNAME/METRICS_PASSWORD not set, /metrics is unprotected")
	}

	generateLimiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, cfg.GenerateRateWindow, logger)
	defer generateLimiter.Close()
	limitGenerate := middleware.NewRateLimitMiddleware(generateLimiter, logger).Limit

	// ==========================================================================
	// Routes
	// ==========================================================================

	mux := http.NewServeMux()

	handler.NewHealthHandler(db, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	handler.NewRuleHandler(services.Rules, logger).RegisterRoutes(mux)
	handler.NewComplianceHandler(services.Compliance, int32(cfg.EvaluationHistoryLimit), logger).RegisterRoutes(mux)
	handler.NewCrewHandler(services.Availability, logger).RegisterRoutes(mux)
	handler.NewRosterHandler(services.Roster, worker.NewEnqueuer(store), logger).RegisterRoutes(mux, limitGenerate)
	handler.NewDisruptionHandler(services.Disruptions, logger).RegisterRoutes(mux)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	stack := middleware.Stack(
		requestLogging.Handler,
		metrics.Middleware,
		securityHeaders.Handler,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
	case err := <-serverErr:
		logger.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if jobWorker != nil {
		jobWorker.Stop()
	}
	stopWorkerCtx()

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
