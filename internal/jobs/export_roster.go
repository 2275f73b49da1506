package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/worker"
)

// Exporter writes a roster version snapshot to storage.
type Exporter interface {
	ExportVersion(ctx context.Context, versionID uuid.UUID) (string, error)
}

// ExportRosterHandler processes export_roster jobs by writing the version
// snapshot through the export service.
type ExportRosterHandler struct {
	exporter Exporter
	logger   *slog.Logger
}

// NewExportRosterHandler creates a handler for roster export jobs.
func NewExportRosterHandler(exporter Exporter, logger *slog.Logger) *ExportRosterHandler {
	return &ExportRosterHandler{exporter: exporter, logger: logger}
}

// Type returns the job type handled.
func (h *ExportRosterHandler) Type() string {
	return worker.JobTypeExportRoster
}

// Handle exports the version named in the payload. Malformed payloads and
// unknown versions fail permanently; storage errors are retried.
func (h *ExportRosterHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.ExportRosterPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("decode payload: %w", err))
	}
	if p.VersionID == uuid.Nil {
		return worker.NewPermanentError(fmt.Errorf("payload has no version_id"))
	}

	key, err := h.exporter.ExportVersion(ctx, p.VersionID)
	if err != nil {
		if domain.ErrorCode(err) == domain.ENOTFOUND {
			return worker.NewPermanentError(err)
		}
		return err
	}

	h.logger.Info("Roster export stored", "version_id", p.VersionID, "key", key)
	return nil
}
