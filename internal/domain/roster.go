// Package domain contains core business types and interfaces.
//
// This file defines roster versions and the assignments they carry.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Assignment Type / Status
// =============================================================================

// AssignmentType is the kind of duty an assignment binds a crew member to.
type AssignmentType string

const (
	AssignmentTypePairing  AssignmentType = "pairing"
	AssignmentTypeReserve  AssignmentType = "reserve"
	AssignmentTypeStandby  AssignmentType = "standby"
	AssignmentTypeTraining AssignmentType = "training"
	AssignmentTypeLeave    AssignmentType = "leave"
)

// IsValid returns true if the assignment type is a recognized value.
func (t AssignmentType) IsValid() bool {
	switch t {
	case AssignmentTypePairing, AssignmentTypeReserve, AssignmentTypeStandby,
		AssignmentTypeTraining, AssignmentTypeLeave:
		return true
	}
	return false
}

// AssignmentStatusScheduled is the status of freshly generated assignments.
const AssignmentStatusScheduled = "scheduled"

// =============================================================================
// Version Type
// =============================================================================

// VersionType distinguishes advisory drafts from authoritative rosters.
type VersionType string

const (
	// VersionTypeDraft is an unpublished roster subject to review.
	VersionTypeDraft VersionType = "draft"

	// VersionTypePublished is the authoritative roster for its period.
	VersionTypePublished VersionType = "published"
)

// String returns the string representation of the version type.
func (t VersionType) String() string {
	return string(t)
}

// =============================================================================
// Roster Domain Types
// =============================================================================

// RosterAssignment binds one crew member to a pairing or non-flying duty for
// a date range.
type RosterAssignment struct {
	ID          uuid.UUID
	VersionID   *uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	CrewID      string
	PairingID   string // Empty for non-flying duty
	Type        AssignmentType
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	CreatedAt   time.Time
}

// RosterVersion is the metadata of one generation run.
type RosterVersion struct {
	ID              uuid.UUID
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Type            VersionType
	Objectives      json.RawMessage // Opaque, passed through for reporting
	TotalViolations int
	TotalCost       float64
	IsActive        bool
	CreatedAt       time.Time
}

// IsPublishable returns true if the version is an active draft.
func (v *RosterVersion) IsPublishable() bool {
	return v.Type == VersionTypeDraft && v.IsActive
}

// =============================================================================
// Roster Service Parameters
// =============================================================================

// GenerateRosterParams contains parameters for generating a draft roster.
type GenerateRosterParams struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Objectives  json.RawMessage
}

// GenerateRosterResult is the outcome of one generation run. Assignments and
// ViolationCount always describe the same persisted RosterVersion.
type GenerateRosterResult struct {
	VersionID            uuid.UUID
	Assignments          []RosterAssignment
	ViolationCount       int
	TotalCost            float64 // No cost model; always zero
	UnassignedPairingIDs []string
}

// ListAssignmentsParams filters roster assignments by period and crew.
type ListAssignmentsParams struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	CrewID      string // Optional
}
