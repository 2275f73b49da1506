// Package service contains the business logic layer.
//
// This file implements roster snapshot export to object storage.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/metrics"
	"github.com/raviagarwal526/aioscrew/internal/repository"
	"github.com/raviagarwal526/aioscrew/internal/storage"
)

// ExportService writes roster version snapshots to object storage.
type ExportService interface {
	// ExportVersion stores a JSON snapshot of a version, its assignments and
	// the legs of every assigned pairing, and returns the storage key.
	// Re-exporting a version overwrites the previous snapshot.
	ExportVersion(ctx context.Context, versionID uuid.UUID) (string, error)
}

// RosterSnapshot is the exported document.
type RosterSnapshot struct {
	ExportedAt  time.Time                `json:"exported_at"`
	Version     SnapshotVersion          `json:"version"`
	Assignments []SnapshotAssignment     `json:"assignments"`
	Legs        map[string][]SnapshotLeg `json:"pairing_legs"`
}

// SnapshotVersion is the version header of a snapshot.
type SnapshotVersion struct {
	ID              uuid.UUID       `json:"id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	Type            string          `json:"type"`
	Objectives      json.RawMessage `json:"objectives,omitempty"`
	TotalViolations int             `json:"total_violations"`
	TotalCost       float64         `json:"total_cost"`
	IsActive        bool            `json:"is_active"`
}

// SnapshotAssignment is one assignment within a snapshot.
type SnapshotAssignment struct {
	CrewID    string `json:"crew_id"`
	PairingID string `json:"pairing_id,omitempty"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// SnapshotLeg is one flight leg of an assigned pairing.
type SnapshotLeg struct {
	Sequence           int       `json:"sequence"`
	FlightNumber       string    `json:"flight_number"`
	DepartureAirport   string    `json:"departure_airport"`
	ArrivalAirport     string    `json:"arrival_airport"`
	ScheduledDeparture time.Time `json:"scheduled_departure"`
	ScheduledArrival   time.Time `json:"scheduled_arrival"`
}

type exportService struct {
	store   repository.Querier
	roster  RosterService
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(store repository.Querier, roster RosterService, st storage.Storage, logger *slog.Logger) ExportService {
	return &exportService{
		store:   store,
		roster:  roster,
		storage: st,
		logger:  logger,
		now:     time.Now,
	}
}

// ExportVersion stores a snapshot of a roster version.
func (s *exportService) ExportVersion(ctx context.Context, versionID uuid.UUID) (key string, err error) {
	const op = "export.version"

	defer func() {
		if err != nil {
			metrics.RosterExportsTotal.WithLabelValues("failed").Inc()
		} else {
			metrics.RosterExportsTotal.WithLabelValues("success").Inc()
		}
	}()

	version, assignments, err := s.roster.GetVersion(ctx, versionID)
	if err != nil {
		return "", err
	}

	snapshot := RosterSnapshot{
		ExportedAt: s.now().UTC(),
		Version: SnapshotVersion{
			ID:              version.ID,
			PeriodStart:     version.PeriodStart.Format(time.DateOnly),
			PeriodEnd:       version.PeriodEnd.Format(time.DateOnly),
			Type:            version.Type.String(),
			Objectives:      version.Objectives,
			TotalViolations: version.TotalViolations,
			TotalCost:       version.TotalCost,
			IsActive:        version.IsActive,
		},
		Assignments: make([]SnapshotAssignment, len(assignments)),
		Legs:        make(map[string][]SnapshotLeg),
	}

	for i, a := range assignments {
		snapshot.Assignments[i] = SnapshotAssignment{
			CrewID:    a.CrewID,
			PairingID: a.PairingID,
			Type:      string(a.Type),
			StartDate: a.StartDate.Format(time.DateOnly),
			EndDate:   a.EndDate.Format(time.DateOnly),
			Status:    a.Status,
		}

		if a.PairingID == "" {
			continue
		}
		if _, seen := snapshot.Legs[a.PairingID]; seen {
			continue
		}
		rows, err := s.store.ListPairingLegs(ctx, a.PairingID)
		if err != nil {
			return "", domain.Internal(err, op, "failed to load pairing legs")
		}
		legs := make([]SnapshotLeg, len(rows))
		for j, r := range rows {
			l := legFromRow(r)
			legs[j] = SnapshotLeg{
				Sequence:           l.Sequence,
				FlightNumber:       l.FlightNumber,
				DepartureAirport:   l.DepartureAirport,
				ArrivalAirport:     l.ArrivalAirport,
				ScheduledDeparture: l.ScheduledDeparture,
				ScheduledArrival:   l.ScheduledArrival,
			}
		}
		snapshot.Legs[a.PairingID] = legs
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", domain.Internal(err, op, "failed to encode roster snapshot")
	}

	key = storage.RosterExportKey(version.PeriodStart, version.PeriodEnd, version.ID)
	if err := s.storage.Put(ctx, key, bytes.NewReader(body), storage.PutOptions{
		ContentType: "application/json",
		Overwrite:   true,
	}); err != nil {
		return "", domain.Internal(err, op, "failed to store roster snapshot")
	}

	s.logger.Info("exported roster version",
		"version_id", version.ID,
		"key", key,
		"assignments", len(assignments),
		"bytes", len(body),
	)
	return key, nil
}
