package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/aioscrew")
	t.Setenv("DEFAULT_JURISDICTION", "easa")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "EASA", cfg.DefaultJurisdiction)
	assert.Equal(t, "local", cfg.StorageProvider)
	assert.True(t, cfg.RosterExclusivePool)
	assert.False(t, cfg.RosterRequireQualifications)
	assert.Equal(t, 50, cfg.EvaluationHistoryLimit)
	assert.Equal(t, time.Minute, cfg.GenerateRateWindow)
	assert.Equal(t, "none", cfg.TraceExporter)
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}},
		{"unknown storage", map[string]string{"STORAGE_PROVIDER": "gcs"}},
		{"s3 without bucket", map[string]string{"STORAGE_PROVIDER": "s3", "S3_ACCESS_KEY_ID": "id", "S3_SECRET_ACCESS_KEY": "secret"}},
		{"unknown exporter", map[string]string{"TRACE_EXPORTER": "jaeger"}},
		{"zero rate limit", map[string]string{"GENERATE_RATE_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/aioscrew")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfig_WorkerConfig(t *testing.T) {
	cfg := &Config{
		WorkerConcurrency:  4,
		WorkerPollInterval: 2 * time.Second,
		WorkerJobTimeout:   10 * time.Minute,
	}

	wc := cfg.WorkerConfig()
	assert.Equal(t, 4, wc.Concurrency)
	assert.Equal(t, 20*time.Minute, wc.StaleJobThreshold)
	assert.NoError(t, wc.Validate())
}
