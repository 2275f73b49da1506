// Package service contains the business logic layer.
//
// This file implements the rule catalog: read access to the active
// regulatory rules of a jurisdiction, plus upserts used by rule-pack seeding.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// =============================================================================
// Interface Definition
// =============================================================================

// RuleService defines the interface for regulatory rule operations.
type RuleService interface {
	// ListActive returns the active rules of a jurisdiction ordered by rule
	// type then category. An empty jurisdiction resolves to the configured
	// default. An unknown jurisdiction yields an empty list.
	// Data-access failures carry domain.ErrCatalogUnavailable.
	ListActive(ctx context.Context, jurisdiction string) ([]domain.RegulatoryRule, error)

	// ListByIDs returns the stored rules with the given IDs, active or not,
	// ordered like ListActive. Duplicate IDs are collapsed. An ID with no
	// stored rule is an EINVALID error.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.RegulatoryRule, error)

	// Upsert creates or updates rules keyed by rule code and returns the
	// stored rules.
	Upsert(ctx context.Context, rules []domain.RegulatoryRule) ([]domain.RegulatoryRule, error)

	// DefaultJurisdiction returns the jurisdiction used when none is given.
	DefaultJurisdiction() string
}

// =============================================================================
// Implementation
// =============================================================================

// ruleService implements the RuleService interface.
type ruleService struct {
	store               repository.Querier
	defaultJurisdiction string
	logger              *slog.Logger
}

// NewRuleService creates a new RuleService.
func NewRuleService(store repository.Querier, defaultJurisdiction string, logger *slog.Logger) RuleService {
	return &ruleService{
		store:               store,
		defaultJurisdiction: strings.ToUpper(strings.TrimSpace(defaultJurisdiction)),
		logger:              logger,
	}
}

// DefaultJurisdiction returns the configured default jurisdiction.
func (s *ruleService) DefaultJurisdiction() string {
	return s.defaultJurisdiction
}

// =============================================================================
// ListActive
// =============================================================================

// ListActive returns the active rules of a jurisdiction.
func (s *ruleService) ListActive(ctx context.Context, jurisdiction string) ([]domain.RegulatoryRule, error) {
	const op = "rule.list_active"

	jurisdiction = strings.ToUpper(strings.TrimSpace(jurisdiction))
	if jurisdiction == "" {
		jurisdiction = s.defaultJurisdiction
	}

	rows, err := s.store.ListActiveRulesByJurisdiction(ctx, jurisdiction)
	if err != nil {
		return nil, domain.Failure(domain.ErrCatalogUnavailable, err, op, "failed to load regulatory rules")
	}

	rules := make([]domain.RegulatoryRule, len(rows))
	for i, r := range rows {
		rules[i] = ruleFromRow(r)
	}

	s.logger.Debug("loaded active rules", "jurisdiction", jurisdiction, "count", len(rules))
	return rules, nil
}

// =============================================================================
// ListByIDs
// =============================================================================

// ListByIDs loads explicitly requested rules from the catalog.
func (s *ruleService) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.RegulatoryRule, error) {
	const op = "rule.list_by_ids"

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return []domain.RegulatoryRule{}, nil
	}

	rows, err := s.store.ListRulesByIDs(ctx, unique)
	if err != nil {
		return nil, domain.Failure(domain.ErrCatalogUnavailable, err, op, "failed to load regulatory rules")
	}

	rules := make([]domain.RegulatoryRule, len(rows))
	for i, r := range rows {
		rules[i] = ruleFromRow(r)
		delete(seen, r.RuleID)
	}

	if len(seen) > 0 {
		missing := make([]string, 0, len(seen))
		for _, id := range unique {
			if seen[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, domain.Invalid(op, "unknown rule IDs: "+strings.Join(missing, ", "))
	}
	return rules, nil
}

// =============================================================================
// Upsert
// =============================================================================

// Upsert creates or updates rules keyed by rule code.
func (s *ruleService) Upsert(ctx context.Context, rules []domain.RegulatoryRule) ([]domain.RegulatoryRule, error) {
	const op = "rule.upsert"

	for _, r := range rules {
		if r.Code == "" || r.Name == "" {
			return nil, domain.Invalid(op, "rule code and name are required")
		}
		if !r.Type.IsValid() {
			return nil, domain.Invalid(op, "rule "+r.Code+" has unknown type "+r.Type.String())
		}
		if r.LimitValue < 0 {
			return nil, domain.Invalid(op, "rule "+r.Code+" has a negative limit")
		}
	}

	stored := make([]domain.RegulatoryRule, 0, len(rules))
	for _, r := range rules {
		unit := r.LimitUnit
		if unit == "" {
			unit = "hours"
		}
		row, err := s.store.UpsertRegulatoryRule(ctx, repository.UpsertRegulatoryRuleParams{
			RuleCode:     r.Code,
			RuleName:     r.Name,
			RuleType:     string(r.Type),
			Jurisdiction: strings.ToUpper(r.Jurisdiction),
			LimitValue:   r.LimitValue,
			LimitUnit:    unit,
			Conditions:   pqtype.NullRawMessage{RawMessage: r.Conditions, Valid: len(r.Conditions) > 0},
			IsActive:     r.IsActive,
			RuleCategory: domain.ToNullString(r.Category),
		})
		if err != nil {
			return nil, domain.Failure(domain.ErrCatalogUnavailable, err, op, "failed to store rule "+r.Code)
		}
		stored = append(stored, ruleFromRow(row))
	}

	s.logger.Info("upserted regulatory rules", "count", len(stored))
	return stored, nil
}
