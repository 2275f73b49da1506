package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationTypeCompliance marks evaluations produced by a compliance check.
const EvaluationTypeCompliance = "compliance_check"

// DutyRecord is one crew member's duty entry for a calendar date.
type DutyRecord struct {
	CrewID          string
	DutyDate        time.Time
	FlightTimeHours float64
	DutyStart       *time.Time
	DutyEnd         *time.Time
}

// RuleEvaluation is the point-in-time result of checking one rule for one crew
// member on one date. LimitValue is copied from the rule when the evaluation
// is made and is never re-read.
type RuleEvaluation struct {
	ID             uuid.UUID
	CrewID         string
	RuleID         uuid.UUID
	RuleType       RuleType
	EvaluationDate time.Time
	EvaluationType string
	CurrentValue   float64
	LimitValue     float64
	Severity       *Severity // nil when compliant
	CreatedAt      time.Time
}

// IsCompliant returns true when no violation severity is set.
func (e *RuleEvaluation) IsCompliant() bool {
	return e.Severity == nil
}

// SeverityValue returns the severity as a string, empty when compliant.
func (e *RuleEvaluation) SeverityValue() string {
	if e.Severity == nil {
		return ""
	}
	return string(*e.Severity)
}

// EvaluationFailure records a rule whose evaluation could not be persisted.
type EvaluationFailure struct {
	RuleID uuid.UUID
	Err    error
}

// EvaluateParams contains parameters for evaluating a crew member's compliance.
type EvaluateParams struct {
	CrewID       string
	AsOf         time.Time
	RuleIDs      []uuid.UUID // Stored rules to check; empty means the active catalog
	Jurisdiction string      // Catalog used when RuleIDs is empty; "" means default
}

// EvaluationResult holds the persisted evaluations of one call along with the
// rules whose evaluation could not be recorded.
type EvaluationResult struct {
	Evaluations []RuleEvaluation
	Failures    []EvaluationFailure
}

// HasViolation returns true if any evaluation is non-compliant.
func (r *EvaluationResult) HasViolation() bool {
	for i := range r.Evaluations {
		if !r.Evaluations[i].IsCompliant() {
			return true
		}
	}
	return false
}

// ViolationCount returns the number of non-compliant evaluations.
func (r *EvaluationResult) ViolationCount() int {
	n := 0
	for i := range r.Evaluations {
		if !r.Evaluations[i].IsCompliant() {
			n++
		}
	}
	return n
}
