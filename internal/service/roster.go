// Package service contains the business logic layer.
//
// This file implements draft roster generation and roster version management.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/metrics"
	"github.com/raviagarwal526/aioscrew/internal/repository"
	"github.com/raviagarwal526/aioscrew/internal/roster"
)

// =============================================================================
// Interface Definition
// =============================================================================

// RosterService defines the interface for roster operations.
type RosterService interface {
	// GenerateDraft assigns available crew to the draft pairings of a period
	// and persists the assignments together with one new active draft
	// version. Either everything is written or nothing is; write failures
	// carry domain.ErrAssignmentPersistFailure. Runs for the same period are
	// serialised.
	GenerateDraft(ctx context.Context, params domain.GenerateRosterParams) (*domain.GenerateRosterResult, error)

	// ListAssignments returns assignments overlapping a period, optionally
	// for one crew member.
	ListAssignments(ctx context.Context, params domain.ListAssignmentsParams) ([]domain.RosterAssignment, error)

	// ListVersions returns versions whose period lies within [start, end],
	// newest first.
	ListVersions(ctx context.Context, start, end time.Time) ([]domain.RosterVersion, error)

	// GetVersion returns a version with its assignments.
	// Returns domain.ENOTFOUND if the version doesn't exist.
	GetVersion(ctx context.Context, id uuid.UUID) (*domain.RosterVersion, []domain.RosterAssignment, error)

	// Publish promotes an active draft to the published roster of its period,
	// retiring any previously published version of that period.
	// Returns domain.ECONFLICT if the version is not an active draft.
	Publish(ctx context.Context, id uuid.UUID) (*domain.RosterVersion, error)
}

// RosterServiceConfig holds assignment policy switches.
type RosterServiceConfig struct {
	// ExclusivePool removes a crew member from the candidate pool once
	// assigned, so one run never books the same person twice.
	ExclusivePool bool

	// RequireQualifications makes candidates hold a pairing's required
	// qualifications in addition to matching its start base.
	RequireQualifications bool
}

// =============================================================================
// Implementation
// =============================================================================

// rosterService implements the RosterService interface.
type rosterService struct {
	store        repository.Store
	rules        RuleService
	compliance   ComplianceService
	availability AvailabilityService
	config       RosterServiceConfig
	locks        *periodLocks
	logger       *slog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	store repository.Store,
	rules RuleService,
	compliance ComplianceService,
	availability AvailabilityService,
	config RosterServiceConfig,
	logger *slog.Logger,
) RosterService {
	return &rosterService{
		store:        store,
		rules:        rules,
		compliance:   compliance,
		availability: availability,
		config:       config,
		locks:        newPeriodLocks(),
		logger:       logger,
	}
}

// =============================================================================
// GenerateDraft
// =============================================================================

// GenerateDraft builds and persists a draft roster for a period.
func (s *rosterService) GenerateDraft(ctx context.Context, params domain.GenerateRosterParams) (result *domain.GenerateRosterResult, err error) {
	const op = "roster.generate_draft"

	if params.PeriodStart.IsZero() || params.PeriodEnd.IsZero() {
		return nil, domain.Invalid(op, "period start and end are required")
	}
	start, end := domain.DateOnly(params.PeriodStart), domain.DateOnly(params.PeriodEnd)
	if end.Before(start) {
		return nil, domain.Invalid(op, "period end must not be before period start")
	}
	if len(params.Objectives) > 0 && !json.Valid(params.Objectives) {
		return nil, domain.Invalid(op, "optimization objectives must be valid JSON")
	}

	unlock := s.locks.lock(start, end)
	defer unlock()

	began := time.Now()
	ctx, span := tracer.Start(ctx, "roster.GenerateDraft", trace.WithAttributes(
		attribute.String("period.start", start.Format(time.DateOnly)),
		attribute.String("period.end", end.Format(time.DateOnly)),
	))
	defer func() { endSpan(span, err) }()

	result, idle, err := s.generate(ctx, start, end, params.Objectives)
	if err != nil {
		metrics.RosterGenerationFailed(time.Since(began))
		s.logger.Error("draft roster generation failed",
			"period_start", start.Format(time.DateOnly),
			"period_end", end.Format(time.DateOnly),
			"error", err,
		)
		return nil, err
	}

	metrics.RosterGenerated(len(result.Assignments), len(result.UnassignedPairingIDs), time.Since(began))
	span.SetAttributes(
		attribute.String("roster.version_id", result.VersionID.String()),
		attribute.Int("roster.assignments", len(result.Assignments)),
		attribute.Int("roster.violations", result.ViolationCount),
	)
	s.logger.Info("generated draft roster",
		"version_id", result.VersionID,
		"period_start", start.Format(time.DateOnly),
		"period_end", end.Format(time.DateOnly),
		"assignments", len(result.Assignments),
		"unassigned", len(result.UnassignedPairingIDs),
		"idle_crew", idle,
		"violations", result.ViolationCount,
	)
	return result, nil
}

// generate plans and persists one draft. The int result is the number of
// candidates still in the pool when planning ends.
func (s *rosterService) generate(ctx context.Context, start, end time.Time, objectives json.RawMessage) (*domain.GenerateRosterResult, int, error) {
	const op = "roster.generate_draft"

	pairingRows, err := s.store.ListDraftPairingsInPeriod(ctx, repository.ListDraftPairingsInPeriodParams{
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to load draft pairings")
	}

	crew, err := s.availability.FindAvailable(ctx, domain.FindAvailableParams{Start: start, End: end})
	if err != nil {
		return nil, 0, err
	}

	rules, err := s.rules.ListActive(ctx, "")
	if err != nil {
		return nil, 0, err
	}
	ruleIDs := make([]uuid.UUID, len(rules))
	for i, r := range rules {
		ruleIDs[i] = r.ID
	}

	pool := roster.NewPool(crew, s.config.ExclusivePool)

	var eligible roster.Eligible
	var eligibleErr error
	if s.config.RequireQualifications {
		eligible = func(c domain.CrewMember, p domain.Pairing) bool {
			if eligibleErr != nil {
				return false
			}
			ok, err := s.availability.Qualified(ctx, c.ID, p.RequiredQualifications)
			if err != nil {
				eligibleErr = err
				return false
			}
			return ok
		}
	}

	versionID := uuid.New()
	result := &domain.GenerateRosterResult{
		VersionID:            versionID,
		Assignments:          []domain.RosterAssignment{},
		UnassignedPairingIDs: []string{},
	}

	var planned []repository.CreateRosterAssignmentParams
	for _, row := range pairingRows {
		pairing := pairingFromRow(row)

		candidate, ok := pool.Pick(pairing, eligible)
		if eligibleErr != nil {
			return nil, 0, eligibleErr
		}
		if !ok {
			result.UnassignedPairingIDs = append(result.UnassignedPairingIDs, pairing.ID)
			s.logger.Debug("no eligible crew for pairing",
				"pairing_id", pairing.ID,
				"start_base", pairing.StartBase,
			)
			continue
		}

		// Compliance is advisory for drafts: violations are counted, the
		// assignment is still made. An empty catalog skips evaluation. A
		// missing evaluation would understate the violation count, so any
		// failure to record one aborts the run.
		if len(ruleIDs) > 0 {
			eval, err := s.compliance.Evaluate(ctx, domain.EvaluateParams{
				CrewID:  candidate.ID,
				AsOf:    pairing.StartDate,
				RuleIDs: ruleIDs,
			})
			if err != nil {
				return nil, 0, err
			}
			if len(eval.Failures) > 0 {
				errs := make([]error, len(eval.Failures))
				for i, f := range eval.Failures {
					errs[i] = f.Err
				}
				return nil, 0, domain.Failure(domain.ErrAssignmentPersistFailure, errors.Join(errs...), op,
					"failed to record compliance evaluation for crew "+candidate.ID)
			}
			if eval.HasViolation() {
				result.ViolationCount++
			}
		}

		planned = append(planned, repository.CreateRosterAssignmentParams{
			VersionID:         uuid.NullUUID{UUID: versionID, Valid: true},
			RosterPeriodStart: start,
			RosterPeriodEnd:   end,
			CrewID:            candidate.ID,
			PairingID:         domain.ToNullString(pairing.ID),
			AssignmentType:    string(domain.AssignmentTypePairing),
			StartDate:         pairing.StartDate,
			EndDate:           pairing.EndDate,
			Status:            domain.AssignmentStatusScheduled,
		})
	}

	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.DeactivateActiveVersions(ctx, repository.DeactivateActiveVersionsParams{
			RosterPeriodStart: start,
			RosterPeriodEnd:   end,
			VersionType:       string(domain.VersionTypeDraft),
		}); err != nil {
			return fmt.Errorf("deactivate previous draft: %w", err)
		}

		for _, p := range planned {
			row, err := q.CreateRosterAssignment(ctx, p)
			if err != nil {
				return fmt.Errorf("create assignment for pairing %s: %w", p.PairingID.String, err)
			}
			result.Assignments = append(result.Assignments, assignmentFromRow(row))
		}

		if _, err := q.CreateRosterVersion(ctx, repository.CreateRosterVersionParams{
			VersionID:              versionID,
			RosterPeriodStart:      start,
			RosterPeriodEnd:        end,
			VersionType:            string(domain.VersionTypeDraft),
			OptimizationObjectives: pqtype.NullRawMessage{RawMessage: objectives, Valid: len(objectives) > 0},
			TotalViolations:        int32(result.ViolationCount),
			TotalCost:              result.TotalCost,
		}); err != nil {
			return fmt.Errorf("create roster version: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, domain.Failure(domain.ErrAssignmentPersistFailure, err, op, "failed to persist draft roster")
	}

	return result, pool.Remaining(), nil
}

// =============================================================================
// ListAssignments / ListVersions / GetVersion
// =============================================================================

// ListAssignments returns assignments overlapping a period.
func (s *rosterService) ListAssignments(ctx context.Context, params domain.ListAssignmentsParams) ([]domain.RosterAssignment, error) {
	const op = "roster.list_assignments"

	if params.PeriodStart.IsZero() || params.PeriodEnd.IsZero() {
		return nil, domain.Invalid(op, "period start and end are required")
	}

	rows, err := s.store.ListRosterAssignments(ctx, repository.ListRosterAssignmentsParams{
		PeriodEnd:   domain.DateOnly(params.PeriodEnd),
		PeriodStart: domain.DateOnly(params.PeriodStart),
		CrewID:      domain.ToNullString(params.CrewID),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list roster assignments")
	}

	assignments := make([]domain.RosterAssignment, len(rows))
	for i, r := range rows {
		assignments[i] = assignmentFromRow(r)
	}
	return assignments, nil
}

// ListVersions returns versions within a period, newest first.
func (s *rosterService) ListVersions(ctx context.Context, start, end time.Time) ([]domain.RosterVersion, error) {
	const op = "roster.list_versions"

	if start.IsZero() || end.IsZero() {
		return nil, domain.Invalid(op, "period start and end are required")
	}

	rows, err := s.store.ListRosterVersions(ctx, repository.ListRosterVersionsParams{
		PeriodStart: domain.DateOnly(start),
		PeriodEnd:   domain.DateOnly(end),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list roster versions")
	}

	versions := make([]domain.RosterVersion, len(rows))
	for i, r := range rows {
		versions[i] = versionFromRow(r)
	}
	return versions, nil
}

// GetVersion returns a version with its assignments.
func (s *rosterService) GetVersion(ctx context.Context, id uuid.UUID) (*domain.RosterVersion, []domain.RosterAssignment, error) {
	const op = "roster.get_version"

	row, err := s.store.GetRosterVersion(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.NotFound(op, "roster version", id.String())
		}
		return nil, nil, domain.Internal(err, op, "failed to get roster version")
	}

	rows, err := s.store.ListRosterAssignmentsByVersion(ctx, uuid.NullUUID{UUID: id, Valid: true})
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list version assignments")
	}

	version := versionFromRow(row)
	assignments := make([]domain.RosterAssignment, len(rows))
	for i, r := range rows {
		assignments[i] = assignmentFromRow(r)
	}
	return &version, assignments, nil
}

// =============================================================================
// Publish
// =============================================================================

// Publish promotes an active draft to the published roster of its period.
func (s *rosterService) Publish(ctx context.Context, id uuid.UUID) (*domain.RosterVersion, error) {
	const op = "roster.publish"

	current, err := s.store.GetRosterVersion(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "roster version", id.String())
		}
		return nil, domain.Internal(err, op, "failed to get roster version")
	}

	unlock := s.locks.lock(current.RosterPeriodStart, current.RosterPeriodEnd)
	defer unlock()

	var published repository.RosterVersion
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		row, err := q.GetRosterVersion(ctx, id)
		if err != nil {
			return domain.Internal(err, op, "failed to get roster version")
		}
		v := versionFromRow(row)
		if !v.IsPublishable() {
			return domain.Conflict(op, "only the active draft of a period can be published")
		}

		if _, err := q.DeactivateActiveVersions(ctx, repository.DeactivateActiveVersionsParams{
			RosterPeriodStart: row.RosterPeriodStart,
			RosterPeriodEnd:   row.RosterPeriodEnd,
			VersionType:       string(domain.VersionTypePublished),
		}); err != nil {
			return domain.Internal(err, op, "failed to retire published roster")
		}

		published, err = q.PublishRosterVersion(ctx, id)
		if err != nil {
			return domain.Internal(err, op, "failed to publish roster version")
		}
		return nil
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.Internal(err, op, "failed to publish roster version")
	}

	v := versionFromRow(published)
	s.logger.Info("published roster version",
		"version_id", v.ID,
		"period_start", v.PeriodStart.Format(time.DateOnly),
		"period_end", v.PeriodEnd.Format(time.DateOnly),
	)
	return &v, nil
}

// =============================================================================
// Period locks
// =============================================================================

// periodLocks serialises work on the same roster period within the process.
type periodLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a period and returns its release function.
func (p *periodLocks) lock(start, end time.Time) func() {
	key := start.Format(time.DateOnly) + "/" + end.Format(time.DateOnly)

	p.mu.Lock()
	m, ok := p.locks[key]
	if !ok {
		m = &sync.Mutex{}
		p.locks[key] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
