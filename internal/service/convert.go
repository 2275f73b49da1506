package service

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// =============================================================================
// Conversion helpers from repository rows to domain types
// =============================================================================

func ruleFromRow(r repository.RegulatoryRule) domain.RegulatoryRule {
	var conditions json.RawMessage
	if r.Conditions.Valid {
		conditions = r.Conditions.RawMessage
	}
	return domain.RegulatoryRule{
		ID:           r.RuleID,
		Code:         r.RuleCode,
		Name:         r.RuleName,
		Type:         domain.RuleType(r.RuleType),
		Jurisdiction: r.Jurisdiction,
		LimitValue:   r.LimitValue,
		LimitUnit:    r.LimitUnit,
		Conditions:   conditions,
		IsActive:     r.IsActive,
		Category:     domain.NullStringValue(r.RuleCategory),
		UpdatedAt:    r.UpdatedAt,
	}
}

func dutyRecordFromRow(r repository.CrewDutyHistory) domain.DutyRecord {
	return domain.DutyRecord{
		CrewID:          r.CrewID,
		DutyDate:        r.DutyDate,
		FlightTimeHours: r.FlightTimeHours,
		DutyStart:       domain.NullTimeValue(r.DutyStartTime),
		DutyEnd:         domain.NullTimeValue(r.DutyEndTime),
	}
}

func evaluationFromRow(r repository.RuleEvaluation) domain.RuleEvaluation {
	e := domain.RuleEvaluation{
		ID:             r.EvaluationID,
		CrewID:         r.CrewID,
		RuleID:         r.RuleID,
		EvaluationDate: r.EvaluationDate,
		EvaluationType: r.EvaluationType,
		CurrentValue:   r.CurrentValue,
		LimitValue:     r.LimitValue,
		CreatedAt:      r.CreatedAt,
	}
	if r.ViolationSeverity.Valid {
		s := domain.Severity(r.ViolationSeverity.String)
		e.Severity = &s
	}
	return e
}

func crewFromRow(r repository.CrewMember) domain.CrewMember {
	return domain.CrewMember{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.CrewRole,
		Base:      r.Base,
		Status:    r.Status,
	}
}

func qualificationFromRow(r repository.CrewQualification) domain.Qualification {
	return domain.Qualification{
		CrewID:     r.CrewID,
		Code:       r.QualificationCode,
		Status:     r.Status,
		ExpiryDate: domain.NullTimeValue(r.ExpiryDate),
	}
}

func pairingFromRow(r repository.Pairing) domain.Pairing {
	return domain.Pairing{
		ID:                     r.PairingID,
		StartDate:              r.StartDate,
		EndDate:                r.EndDate,
		StartBase:              r.StartBase,
		EndBase:                r.EndBase,
		TotalFlightHours:       r.TotalFlightHours,
		TotalCreditHours:       r.TotalCreditHours,
		RequiredQualifications: r.RequiredQualifications,
		Status:                 r.Status,
	}
}

func legFromRow(r repository.PairingLeg) domain.PairingLeg {
	return domain.PairingLeg{
		Sequence:           int(r.LegSequence),
		FlightNumber:       r.FlightNumber,
		DepartureAirport:   r.DepartureAirport,
		ArrivalAirport:     r.ArrivalAirport,
		ScheduledDeparture: r.ScheduledDeparture,
		ScheduledArrival:   r.ScheduledArrival,
	}
}

func assignmentFromRow(r repository.RosterAssignment) domain.RosterAssignment {
	var versionID *uuid.UUID
	if r.VersionID.Valid {
		id := r.VersionID.UUID
		versionID = &id
	}
	return domain.RosterAssignment{
		ID:          r.AssignmentID,
		VersionID:   versionID,
		PeriodStart: r.RosterPeriodStart,
		PeriodEnd:   r.RosterPeriodEnd,
		CrewID:      r.CrewID,
		PairingID:   domain.NullStringValue(r.PairingID),
		Type:        domain.AssignmentType(r.AssignmentType),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func versionFromRow(r repository.RosterVersion) domain.RosterVersion {
	var objectives json.RawMessage
	if r.OptimizationObjectives.Valid {
		objectives = r.OptimizationObjectives.RawMessage
	}
	return domain.RosterVersion{
		ID:              r.VersionID,
		PeriodStart:     r.RosterPeriodStart,
		PeriodEnd:       r.RosterPeriodEnd,
		Type:            domain.VersionType(r.VersionType),
		Objectives:      objectives,
		TotalViolations: int(r.TotalViolations),
		TotalCost:       r.TotalCost,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
	}
}

func disruptionFromRow(r repository.Disruption) domain.Disruption {
	crewIDs := r.AffectedCrewIds
	if crewIDs == nil {
		crewIDs = []string{}
	}
	return domain.Disruption{
		ID:                r.DisruptionID,
		Type:              r.DisruptionType,
		Severity:          r.Severity,
		AffectedFlightID:  domain.NullStringValue(r.AffectedFlightID),
		AffectedPairingID: domain.NullStringValue(r.AffectedPairingID),
		AffectedCrewIDs:   crewIDs,
		Start:             r.DisruptionStart,
		End:               domain.NullTimeValue(r.DisruptionEnd),
		RootCause:         domain.NullStringValue(r.RootCause),
		Description:       domain.NullStringValue(r.Description),
		Status:            domain.DisruptionStatus(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
