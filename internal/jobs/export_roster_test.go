package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/worker"
)

type fakeExporter struct {
	err    error
	called []uuid.UUID
}

func (f *fakeExporter) ExportVersion(ctx context.Context, versionID uuid.UUID) (string, error) {
	f.called = append(f.called, versionID)
	if f.err != nil {
		return "", f.err
	}
	return "rosters/2025-01-01_2025-01-31/" + versionID.String() + ".json", nil
}

func TestExportRosterHandler(t *testing.T) {
	versionID := uuid.New()
	valid, _ := json.Marshal(worker.ExportRosterPayload{VersionID: versionID})

	tests := []struct {
		name          string
		payload       []byte
		exportErr     error
		wantErr       bool
		wantPermanent bool
		wantCalled    bool
	}{
		{"exports version", valid, nil, false, false, true},
		{"malformed payload", []byte(`{"version_id":`), nil, true, true, false},
		{"missing version", []byte(`{}`), nil, true, true, false},
		{"unknown version", valid, domain.NotFound("roster.get_version", "roster version", versionID.String()), true, true, true},
		{"storage failure retried", valid, domain.Internal(errors.New("bucket unavailable"), "export.version", "failed to store roster snapshot"), true, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exporter := &fakeExporter{err: tc.exportErr}
			h := NewExportRosterHandler(exporter, slog.New(slog.NewTextHandler(io.Discard, nil)))
			assert.Equal(t, worker.JobTypeExportRoster, h.Type())

			err := h.Handle(context.Background(), tc.payload)
			assert.Equal(t, tc.wantErr, err != nil)
			assert.Equal(t, tc.wantPermanent, worker.IsPermanent(err))
			assert.Equal(t, tc.wantCalled, len(exporter.called) == 1)
		})
	}
}
