// Package service contains the business logic layer.
//
// This file implements compliance evaluation: checking a crew member's duty
// history against regulatory rules and recording every result as an audit
// trail entry.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/raviagarwal526/aioscrew/internal/compliance"
	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/metrics"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// DefaultHistoryLimit bounds History when the caller passes no limit.
const DefaultHistoryLimit = 50

// =============================================================================
// Interface Definition
// =============================================================================

// ComplianceService defines the interface for compliance evaluation.
type ComplianceService interface {
	// Evaluate checks a crew member against the stored rules named by
	// params.RuleIDs (or the active catalog when none are given) as of
	// params.AsOf and persists one evaluation per rule. Unknown rule IDs are
	// an EINVALID error.
	//
	// A rule whose evaluation cannot be persisted is left out of
	// Evaluations and reported in Failures; the other rules still run.
	// Failing to read duty history or the catalog aborts the call.
	Evaluate(ctx context.Context, params domain.EvaluateParams) (*domain.EvaluationResult, error)

	// History lists a crew member's recorded evaluations, most recent first.
	History(ctx context.Context, crewID string, limit int32) ([]domain.RuleEvaluation, error)
}

// =============================================================================
// Implementation
// =============================================================================

// complianceService implements the ComplianceService interface.
type complianceService struct {
	store  repository.Querier
	rules  RuleService
	logger *slog.Logger
	now    func() time.Time
}

// NewComplianceService creates a new ComplianceService.
func NewComplianceService(store repository.Querier, rules RuleService, logger *slog.Logger) ComplianceService {
	return &complianceService{
		store:  store,
		rules:  rules,
		logger: logger,
		now:    time.Now,
	}
}

// =============================================================================
// Evaluate
// =============================================================================

// Evaluate checks a crew member's compliance and records each evaluation.
func (s *complianceService) Evaluate(ctx context.Context, params domain.EvaluateParams) (result *domain.EvaluationResult, err error) {
	const op = "compliance.evaluate"

	if params.CrewID == "" {
		return nil, domain.Invalid(op, "crew ID is required")
	}

	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = domain.DateOnly(asOf)

	ctx, span := tracer.Start(ctx, "compliance.Evaluate", trace.WithAttributes(
		attribute.String("crew.id", params.CrewID),
		attribute.String("evaluation.date", asOf.Format(time.DateOnly)),
	))
	defer func() { endSpan(span, err) }()

	// Explicit rules are always read back from the catalog so every
	// evaluation records the stored limit of the rule it cites.
	var rules []domain.RegulatoryRule
	if len(params.RuleIDs) > 0 {
		rules, err = s.rules.ListByIDs(ctx, params.RuleIDs)
	} else {
		rules, err = s.rules.ListActive(ctx, params.Jurisdiction)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListRecentDutyHistory(ctx, repository.ListRecentDutyHistoryParams{
		CrewID:   params.CrewID,
		DutyDate: asOf,
		Limit:    compliance.MaxDutyRecords,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load duty history")
	}

	history := make([]domain.DutyRecord, len(rows))
	for i, r := range rows {
		history[i] = dutyRecordFromRow(r)
	}

	result = &domain.EvaluationResult{
		Evaluations: make([]domain.RuleEvaluation, 0, len(rules)),
	}

	for _, rule := range rules {
		outcome := compliance.Check(rule, history, asOf)

		var severity string
		if outcome.Severity != nil {
			severity = string(*outcome.Severity)
		}

		row, err := s.store.CreateRuleEvaluation(ctx, repository.CreateRuleEvaluationParams{
			CrewID:            params.CrewID,
			RuleID:            rule.ID,
			EvaluationDate:    asOf,
			EvaluationType:    domain.EvaluationTypeCompliance,
			CurrentValue:      outcome.CurrentValue,
			LimitValue:        rule.LimitValue,
			IsCompliant:       outcome.IsCompliant(),
			ViolationSeverity: domain.ToNullString(severity),
		})
		if err != nil {
			s.logger.Error("failed to record rule evaluation",
				"crew_id", params.CrewID,
				"rule_id", rule.ID,
				"rule_type", rule.Type,
				"error", err,
			)
			metrics.EvaluationPersistFailed(rule.Type.String())
			result.Failures = append(result.Failures, domain.EvaluationFailure{
				RuleID: rule.ID,
				Err:    domain.Failure(domain.ErrEvaluationPersistFailure, err, op, "failed to record evaluation"),
			})
			continue
		}

		eval := evaluationFromRow(row)
		eval.RuleType = rule.Type
		result.Evaluations = append(result.Evaluations, eval)
		metrics.EvaluationRecorded(rule.Type.String(), severity)
	}

	span.SetAttributes(
		attribute.Int("evaluation.count", len(result.Evaluations)),
		attribute.Int("evaluation.violations", result.ViolationCount()),
		attribute.Int("evaluation.failures", len(result.Failures)),
	)

	s.logger.Debug("evaluated crew compliance",
		"crew_id", params.CrewID,
		"as_of", asOf.Format(time.DateOnly),
		"rules", len(rules),
		"violations", result.ViolationCount(),
		"failures", len(result.Failures),
	)

	return result, nil
}

// =============================================================================
// History
// =============================================================================

// History lists a crew member's recorded evaluations.
func (s *complianceService) History(ctx context.Context, crewID string, limit int32) ([]domain.RuleEvaluation, error) {
	const op = "compliance.history"

	if crewID == "" {
		return nil, domain.Invalid(op, "crew ID is required")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.store.ListRuleEvaluationsByCrew(ctx, repository.ListRuleEvaluationsByCrewParams{
		CrewID: crewID,
		Limit:  limit,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list evaluations")
	}

	evals := make([]domain.RuleEvaluation, len(rows))
	for i, r := range rows {
		evals[i] = evaluationFromRow(r)
	}
	return evals, nil
}
