package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	Port        int
	LogLevel    string
	DatabaseUrl string

	// Compliance
	DefaultJurisdiction    string // used when a request names no jurisdiction
	EvaluationHistoryLimit int    // default page size of the evaluation audit trail

	// Roster generation policy
	RosterExclusivePool         bool // book each crew member at most once per run
	RosterRequireQualifications bool // match pairing qualifications as well as base

	// Rate limit for POST /api/roster/generate
	GenerateRateLimit  int
	GenerateRateWindow time.Duration

	// Storage Configuration
	StorageProvider string // "local" or "s3"

	// Local Storage (development)
	LocalStoragePath string // Base directory for roster exports
	LocalStorageURL  string // Base URL for linking exports, optional

	// S3-compatible storage (production)
	S3Endpoint        string // Custom endpoint for R2, MinIO and similar
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UsePathStyle    bool
	S3PublicURL       string // Optional public base URL

	// Worker Configuration
	WorkerEnabled      bool
	WorkerConcurrency  int
	WorkerPollInterval time.Duration
	WorkerJobTimeout   time.Duration

	// Tracing exporter: "none" or "stdout"
	TraceExporter string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		DefaultJurisdiction:    strings.ToUpper(getEnv("DEFAULT_JURISDICTION", "FAA")),
		EvaluationHistoryLimit: getEnvInt("EVALUATION_HISTORY_LIMIT", 50),

		RosterExclusivePool:         getEnvBool("ROSTER_EXCLUSIVE_POOL", true),
		RosterRequireQualifications: getEnvBool("ROSTER_REQUIRE_QUALIFICATIONS", false),

		GenerateRateLimit:  getEnvInt("GENERATE_RATE_LIMIT", 10),
		GenerateRateWindow: getEnvDuration("GENERATE_RATE_WINDOW", time.Minute),

		// Storage defaults to local filesystem for development
		StorageProvider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./storage"),
		LocalStorageURL:  getEnv("LOCAL_STORAGE_URL", ""),

		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3BucketName:      getEnv("S3_BUCKET_NAME", ""),
		S3UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", false),
		S3PublicURL:       getEnv("S3_PUBLIC_URL", ""),

		// Worker defaults
		WorkerEnabled:      getEnvBool("WORKER_ENABLED", true),
		WorkerConcurrency:  getEnvInt("WORKER_CONCURRENCY", 2),
		WorkerPollInterval: getEnvDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		WorkerJobTimeout:   getEnvDuration("WORKER_JOB_TIMEOUT", 2*time.Minute),

		TraceExporter: getEnv("TRACE_EXPORTER", "none"),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	// Validate storage configuration
	switch c.StorageProvider {
	case "local":
	case "s3":
		if c.S3AccessKeyID == "" {
			return fmt.Errorf("S3_ACCESS_KEY_ID is required when STORAGE_PROVIDER is 's3'")
		}
		if c.S3SecretAccessKey == "" {
			return fmt.Errorf("S3_SECRET_ACCESS_KEY is required when STORAGE_PROVIDER is 's3'")
		}
		if c.S3BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required when STORAGE_PROVIDER is 's3'")
		}
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be either 'local' or 's3', got: %s", c.StorageProvider)
	}

	switch c.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("TRACE_EXPORTER must be either 'none' or 'stdout', got: %s", c.TraceExporter)
	}

	if c.GenerateRateLimit <= 0 {
		return fmt.Errorf("GENERATE_RATE_LIMIT must be positive, got: %d", c.GenerateRateLimit)
	}
	if c.EvaluationHistoryLimit <= 0 {
		return fmt.Errorf("EVALUATION_HISTORY_LIMIT must be positive, got: %d", c.EvaluationHistoryLimit)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
