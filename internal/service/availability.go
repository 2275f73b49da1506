// Package service contains the business logic layer.
//
// This file implements crew availability resolution for a date range.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// =============================================================================
// Interface Definition
// =============================================================================

// AvailabilityService defines the interface for resolving eligible crew.
type AvailabilityService interface {
	// FindAvailable returns active crew, optionally at one base, with no
	// leave, medical or training record overlapping [Start, End]. When
	// qualifications are requested the pool is narrowed in a second pass to
	// crew holding all of them, active and unexpired as of today.
	// Failures carry domain.ErrAvailabilityQueryFailure.
	FindAvailable(ctx context.Context, params domain.FindAvailableParams) ([]domain.CrewMember, error)

	// Qualified reports whether a crew member holds every code, active and
	// unexpired as of today.
	Qualified(ctx context.Context, crewID string, codes []string) (bool, error)
}

// =============================================================================
// Implementation
// =============================================================================

// availabilityService implements the AvailabilityService interface.
type availabilityService struct {
	store  repository.Querier
	logger *slog.Logger
	now    func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(store repository.Querier, logger *slog.Logger) AvailabilityService {
	return &availabilityService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// =============================================================================
// FindAvailable
// =============================================================================

// FindAvailable returns the crew eligible for assignment in a date range.
func (s *availabilityService) FindAvailable(ctx context.Context, params domain.FindAvailableParams) (crew []domain.CrewMember, err error) {
	const op = "availability.find"

	if params.Start.IsZero() || params.End.IsZero() {
		return nil, domain.Invalid(op, "start and end dates are required")
	}
	start, end := domain.DateOnly(params.Start), domain.DateOnly(params.End)
	if end.Before(start) {
		return nil, domain.Invalid(op, "end date must not be before start date")
	}

	ctx, span := tracer.Start(ctx, "availability.FindAvailable", trace.WithAttributes(
		attribute.String("period.start", start.Format(time.DateOnly)),
		attribute.String("period.end", end.Format(time.DateOnly)),
		attribute.String("crew.base", params.Base),
		attribute.StringSlice("crew.qualifications", params.Qualifications),
	))
	defer func() { endSpan(span, err) }()

	rows, err := s.store.ListAvailableCrew(ctx, repository.ListAvailableCrewParams{
		Base:      domain.ToNullString(params.Base),
		EndDate:   end,
		StartDate: start,
	})
	if err != nil {
		return nil, domain.Failure(domain.ErrAvailabilityQueryFailure, err, op, "failed to list available crew")
	}

	crew = make([]domain.CrewMember, len(rows))
	for i, r := range rows {
		crew[i] = crewFromRow(r)
	}

	if len(params.Qualifications) == 0 {
		span.SetAttributes(attribute.Int("crew.count", len(crew)))
		return crew, nil
	}

	qualified := make([]domain.CrewMember, 0, len(crew))
	for _, c := range crew {
		ok, err := s.Qualified(ctx, c.ID, params.Qualifications)
		if err != nil {
			return nil, err
		}
		if ok {
			qualified = append(qualified, c)
		}
	}

	s.logger.Debug("resolved available crew",
		"base", params.Base,
		"candidates", len(crew),
		"qualified", len(qualified),
	)
	span.SetAttributes(attribute.Int("crew.count", len(qualified)))
	return qualified, nil
}

// =============================================================================
// Qualified
// =============================================================================

// Qualified reports whether a crew member holds every requested code.
func (s *availabilityService) Qualified(ctx context.Context, crewID string, codes []string) (bool, error) {
	const op = "availability.qualified"

	if len(codes) == 0 {
		return true, nil
	}

	rows, err := s.store.ListCrewQualifications(ctx, crewID)
	if err != nil {
		return false, domain.Failure(domain.ErrAvailabilityQueryFailure, err, op, "failed to load crew qualifications")
	}

	quals := make([]domain.Qualification, len(rows))
	for i, r := range rows {
		quals[i] = qualificationFromRow(r)
	}
	return domain.HoldsAll(quals, codes, s.now()), nil
}
