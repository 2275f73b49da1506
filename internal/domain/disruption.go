package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Disruption Status
// =============================================================================

// DisruptionStatus is the lifecycle state of a disruption.
type DisruptionStatus string

const (
	DisruptionStatusOpen         DisruptionStatus = "open"
	DisruptionStatusAcknowledged DisruptionStatus = "acknowledged"
	DisruptionStatusResolved     DisruptionStatus = "resolved"
)

// String returns the string representation of the status.
func (s DisruptionStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s DisruptionStatus) IsValid() bool {
	switch s {
	case DisruptionStatusOpen, DisruptionStatusAcknowledged, DisruptionStatusResolved:
		return true
	}
	return false
}

// CanTransitionTo checks if a disruption can move to the target status.
//
// Valid transitions:
// - open -> acknowledged
// - open -> resolved
// - acknowledged -> resolved
func (s DisruptionStatus) CanTransitionTo(target DisruptionStatus) bool {
	switch s {
	case DisruptionStatusOpen:
		return target == DisruptionStatusAcknowledged || target == DisruptionStatusResolved
	case DisruptionStatusAcknowledged:
		return target == DisruptionStatusResolved
	}
	return false
}

// =============================================================================
// Disruption Domain Type
// =============================================================================

// Disruption is an operational event affecting flights, pairings or crew.
type Disruption struct {
	ID                uuid.UUID
	Type              string
	Severity          string
	AffectedFlightID  string
	AffectedPairingID string
	AffectedCrewIDs   []string
	Start             time.Time
	End               *time.Time
	RootCause         string
	Description       string
	Status            DisruptionStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TransitionTo moves the disruption to target if the lifecycle allows it.
func (d *Disruption) TransitionTo(target DisruptionStatus) error {
	if !d.Status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition disruption from %s to %s", d.Status, target)
	}
	d.Status = target
	return nil
}

// =============================================================================
// Disruption Service Parameters
// =============================================================================

// CreateDisruptionParams contains parameters for recording a disruption.
type CreateDisruptionParams struct {
	Type              string
	Severity          string
	AffectedFlightID  string
	AffectedPairingID string
	AffectedCrewIDs   []string
	Start             time.Time
	End               *time.Time
	RootCause         string
	Description       string
}

// DisruptionFilter narrows a disruption listing. Nil or empty fields apply no
// constraint. EndDate is inclusive of the whole day.
type DisruptionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    DisruptionStatus
}
