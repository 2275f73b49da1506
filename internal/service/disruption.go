// Package service contains the business logic layer.
//
// This file implements disruption tracking.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/metrics"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// =============================================================================
// Interface Definition
// =============================================================================

// DisruptionService defines the interface for disruption operations.
// Persistence failures carry domain.ErrDisruptionPersistFailure.
type DisruptionService interface {
	// List returns disruptions matching the filter, latest start first.
	List(ctx context.Context, filter domain.DisruptionFilter) ([]domain.Disruption, error)

	// Create records a new open disruption and returns it with its ID.
	Create(ctx context.Context, params domain.CreateDisruptionParams) (*domain.Disruption, error)

	// UpdateStatus moves a disruption along its lifecycle.
	// Returns domain.ENOTFOUND if it doesn't exist and domain.ECONFLICT for
	// a transition the lifecycle does not allow.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DisruptionStatus) (*domain.Disruption, error)
}

// =============================================================================
// Implementation
// =============================================================================

// disruptionService implements the DisruptionService interface.
type disruptionService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewDisruptionService creates a new DisruptionService.
func NewDisruptionService(store repository.Store, logger *slog.Logger) DisruptionService {
	return &disruptionService{
		store:  store,
		logger: logger,
	}
}

// =============================================================================
// List
// =============================================================================

// List returns disruptions matching the filter.
func (s *disruptionService) List(ctx context.Context, filter domain.DisruptionFilter) ([]domain.Disruption, error) {
	const op = "disruption.list"

	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.Invalid(op, "unknown disruption status")
	}

	params := repository.ListDisruptionsParams{
		Status: domain.ToNullString(string(filter.Status)),
	}
	if filter.StartDate != nil {
		params.StartFrom = sql.NullTime{Time: domain.DateOnly(*filter.StartDate), Valid: true}
	}
	if filter.EndDate != nil {
		// The end date covers its whole day.
		params.StartBefore = sql.NullTime{Time: domain.DateOnly(*filter.EndDate).AddDate(0, 0, 1), Valid: true}
	}

	rows, err := s.store.ListDisruptions(ctx, params)
	if err != nil {
		return nil, domain.Failure(domain.ErrDisruptionPersistFailure, err, op, "failed to list disruptions")
	}

	disruptions := make([]domain.Disruption, len(rows))
	for i, r := range rows {
		disruptions[i] = disruptionFromRow(r)
	}
	return disruptions, nil
}

// =============================================================================
// Create
// =============================================================================

// Create records a new disruption.
func (s *disruptionService) Create(ctx context.Context, params domain.CreateDisruptionParams) (*domain.Disruption, error) {
	const op = "disruption.create"

	params.Type = strings.TrimSpace(params.Type)
	params.Severity = strings.TrimSpace(params.Severity)
	if params.Type == "" {
		return nil, domain.Invalid(op, "disruption type is required")
	}
	if params.Severity == "" {
		return nil, domain.Invalid(op, "severity is required")
	}
	if params.Start.IsZero() {
		return nil, domain.Invalid(op, "disruption start is required")
	}
	if params.End != nil && params.End.Before(params.Start) {
		return nil, domain.Invalid(op, "disruption end must not be before its start")
	}

	crewIDs := params.AffectedCrewIDs
	if crewIDs == nil {
		crewIDs = []string{}
	}

	row, err := s.store.CreateDisruption(ctx, repository.CreateDisruptionParams{
		DisruptionType:    params.Type,
		Severity:          params.Severity,
		AffectedFlightID:  domain.ToNullString(params.AffectedFlightID),
		AffectedPairingID: domain.ToNullString(params.AffectedPairingID),
		AffectedCrewIds:   crewIDs,
		DisruptionStart:   params.Start,
		DisruptionEnd:     domain.ToNullTime(params.End),
		RootCause:         domain.ToNullString(params.RootCause),
		Description:       domain.ToNullString(params.Description),
		Status:            string(domain.DisruptionStatusOpen),
	})
	if err != nil {
		return nil, domain.Failure(domain.ErrDisruptionPersistFailure, err, op, "failed to record disruption")
	}

	d := disruptionFromRow(row)
	metrics.DisruptionsCreated.WithLabelValues(d.Type, d.Severity).Inc()
	s.logger.Info("disruption recorded",
		"disruption_id", d.ID,
		"type", d.Type,
		"severity", d.Severity,
		"affected_crew", len(d.AffectedCrewIDs),
	)
	return &d, nil
}

// =============================================================================
// UpdateStatus
// =============================================================================

// UpdateStatus moves a disruption along its lifecycle.
func (s *disruptionService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DisruptionStatus) (*domain.Disruption, error) {
	const op = "disruption.update_status"

	if !status.IsValid() {
		return nil, domain.Invalid(op, "unknown disruption status")
	}

	var updated repository.Disruption
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		row, err := q.GetDisruption(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFound(op, "disruption", id.String())
			}
			return domain.Failure(domain.ErrDisruptionPersistFailure, err, op, "failed to get disruption")
		}

		d := disruptionFromRow(row)
		if err := d.TransitionTo(status); err != nil {
			return domain.Conflict(op, err.Error())
		}

		updated, err = q.UpdateDisruptionStatus(ctx, repository.UpdateDisruptionStatusParams{
			DisruptionID: id,
			Status:       string(status),
		})
		if err != nil {
			return domain.Failure(domain.ErrDisruptionPersistFailure, err, op, "failed to update disruption")
		}
		return nil
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.Failure(domain.ErrDisruptionPersistFailure, err, op, "failed to update disruption")
	}

	d := disruptionFromRow(updated)
	s.logger.Info("disruption status updated", "disruption_id", id, "status", d.Status)
	return &d, nil
}
