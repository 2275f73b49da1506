// Package domain contains core business types and interfaces.
//
// This file defines regulatory rules and the severity scale used when a crew
// member exceeds one of them.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Rule Type
// =============================================================================

// RuleType identifies how a rule's metric is computed from duty history.
type RuleType string

const (
	RuleTypeFlightTime RuleType = "flight_time"
	RuleTypeDutyTime   RuleType = "duty_time"
	RuleTypeRest       RuleType = "rest"
	RuleTypeAnnual     RuleType = "annual"
	RuleTypeMonthly    RuleType = "monthly"
	RuleTypeWeekly     RuleType = "weekly"
)

// String returns the string representation of the rule type.
func (t RuleType) String() string {
	return string(t)
}

// IsValid returns true if the rule type is a recognized value.
func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypeFlightTime, RuleTypeDutyTime, RuleTypeRest,
		RuleTypeAnnual, RuleTypeMonthly, RuleTypeWeekly:
		return true
	}
	return false
}

// =============================================================================
// Violation Severity
// =============================================================================

// Severity is the two-tier classification of a rule violation.
type Severity string

const (
	// SeverityMajor indicates the limit is exceeded.
	SeverityMajor Severity = "major"

	// SeverityCritical indicates the limit is exceeded by more than the
	// rule type's critical margin.
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is a recognized value.
func (s Severity) IsValid() bool {
	return s == SeverityMajor || s == SeverityCritical
}

// =============================================================================
// Regulatory Rule
// =============================================================================

// RegulatoryRule is a jurisdiction-specific limit on crew activity.
// Rules are reference data and are read-only to the engine.
type RegulatoryRule struct {
	ID           uuid.UUID       // Unique identifier
	Code         string          // Stable authoring key (e.g., "FAA-117-WEEKLY")
	Name         string          // Human-readable name
	Type         RuleType        // How the metric is computed
	Jurisdiction string          // Regulator code (e.g., "FAA")
	LimitValue   float64         // Threshold in LimitUnit
	LimitUnit    string          // Usually "hours"
	Conditions   json.RawMessage // Optional structured conditions, uninterpreted
	IsActive     bool
	Category     string
	UpdatedAt    time.Time
}
