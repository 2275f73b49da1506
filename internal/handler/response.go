package handler

import (
	"encoding/json"
	"time"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

// =============================================================================
// Response Types
// =============================================================================

// RuleResponse is the JSON form of a regulatory rule.
type RuleResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	RuleType     string          `json:"rule_type"`
	Jurisdiction string          `json:"jurisdiction"`
	LimitValue   float64         `json:"limit_value"`
	LimitUnit    string          `json:"limit_unit"`
	Conditions   json.RawMessage `json:"conditions,omitempty"`
	Category     string          `json:"category,omitempty"`
}

// EvaluationResponse is the JSON form of a rule evaluation.
type EvaluationResponse struct {
	ID             string  `json:"id"`
	CrewID         string  `json:"crew_id"`
	RuleID         string  `json:"rule_id"`
	RuleType       string  `json:"rule_type,omitempty"`
	EvaluationDate string  `json:"evaluation_date"`
	CurrentValue   float64 `json:"current_value"`
	LimitValue     float64 `json:"limit_value"`
	Compliant      bool    `json:"compliant"`
	Severity       string  `json:"severity,omitempty"`
}

// EvaluateResponse is the result of a compliance check.
type EvaluateResponse struct {
	CrewID         string               `json:"crew_id"`
	Evaluations    []EvaluationResponse `json:"evaluations"`
	ViolationCount int                  `json:"violation_count"`
	FailedRuleIDs  []string             `json:"failed_rule_ids,omitempty"`
}

// CrewResponse is the JSON form of a crew member.
type CrewResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Base   string `json:"base"`
	Status string `json:"status"`
}

// AssignmentResponse is the JSON form of a roster assignment.
type AssignmentResponse struct {
	ID             string `json:"id"`
	VersionID      string `json:"version_id,omitempty"`
	CrewID         string `json:"crew_id"`
	PairingID      string `json:"pairing_id,omitempty"`
	AssignmentType string `json:"assignment_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
}

// VersionResponse is the JSON form of a roster version.
type VersionResponse struct {
	ID              string          `json:"id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	VersionType     string          `json:"version_type"`
	Objectives      json.RawMessage `json:"optimization_objectives,omitempty"`
	TotalViolations int             `json:"total_violations"`
	TotalCost       float64         `json:"total_cost"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// VersionDetailResponse is a version with its assignments.
type VersionDetailResponse struct {
	VersionResponse
	Assignments []AssignmentResponse `json:"assignments"`
}

// GenerateResponse is the result of a roster generation run.
type GenerateResponse struct {
	VersionID            string               `json:"version_id"`
	Assignments          []AssignmentResponse `json:"assignments"`
	ViolationCount       int                  `json:"violation_count"`
	TotalCost            float64              `json:"total_cost"`
	UnassignedPairingIDs []string             `json:"unassigned_pairing_ids"`
}

// DisruptionResponse is the JSON form of a disruption.
type DisruptionResponse struct {
	ID                string     `json:"id"`
	Type              string     `json:"disruption_type"`
	Severity          string     `json:"severity"`
	AffectedFlightID  string     `json:"affected_flight_id,omitempty"`
	AffectedPairingID string     `json:"affected_pairing_id,omitempty"`
	AffectedCrewIDs   []string   `json:"affected_crew_ids"`
	Start             time.Time  `json:"disruption_start"`
	End               *time.Time `json:"disruption_end,omitempty"`
	RootCause         string     `json:"root_cause,omitempty"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
}

// =============================================================================
// Conversions
// =============================================================================

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func toRuleResponses(rules []domain.RegulatoryRule) []RuleResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleResponse{
			ID:           r.ID.String(),
			Code:         r.Code,
			Name:         r.Name,
			RuleType:     r.Type.String(),
			Jurisdiction: r.Jurisdiction,
			LimitValue:   r.LimitValue,
			LimitUnit:    r.LimitUnit,
			Conditions:   r.Conditions,
			Category:     r.Category,
		})
	}
	return out
}

func toEvaluationResponses(evals []domain.RuleEvaluation) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(evals))
	for i := range evals {
		e := &evals[i]
		out = append(out, EvaluationResponse{
			ID:             e.ID.String(),
			CrewID:         e.CrewID,
			RuleID:         e.RuleID.String(),
			RuleType:       e.RuleType.String(),
			EvaluationDate: formatDate(e.EvaluationDate),
			CurrentValue:   e.CurrentValue,
			LimitValue:     e.LimitValue,
			Compliant:      e.IsCompliant(),
			Severity:       e.SeverityValue(),
		})
	}
	return out
}

func toEvaluateResponse(crewID string, result *domain.EvaluationResult) EvaluateResponse {
	resp := EvaluateResponse{
		CrewID:         crewID,
		Evaluations:    toEvaluationResponses(result.Evaluations),
		ViolationCount: result.ViolationCount(),
	}
	for _, f := range result.Failures {
		resp.FailedRuleIDs = append(resp.FailedRuleIDs, f.RuleID.String())
	}
	return resp
}

func toCrewResponses(crew []domain.CrewMember) []CrewResponse {
	out := make([]CrewResponse, 0, len(crew))
	for i := range crew {
		c := &crew[i]
		out = append(out, CrewResponse{
			ID:     c.ID,
			Name:   c.FullName(),
			Role:   c.Role,
			Base:   c.Base,
			Status: c.Status,
		})
	}
	return out
}

func toAssignmentResponses(assignments []domain.RosterAssignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		resp := AssignmentResponse{
			ID:             a.ID.String(),
			CrewID:         a.CrewID,
			PairingID:      a.PairingID,
			AssignmentType: string(a.Type),
			StartDate:      formatDate(a.StartDate),
			EndDate:        formatDate(a.EndDate),
			Status:         a.Status,
		}
		if a.VersionID != nil {
			resp.VersionID = a.VersionID.String()
		}
		out = append(out, resp)
	}
	return out
}

func toVersionResponse(v *domain.RosterVersion) VersionResponse {
	return VersionResponse{
		ID:              v.ID.String(),
		PeriodStart:     formatDate(v.PeriodStart),
		PeriodEnd:       formatDate(v.PeriodEnd),
		VersionType:     v.Type.String(),
		Objectives:      v.Objectives,
		TotalViolations: v.TotalViolations,
		TotalCost:       v.TotalCost,
		IsActive:        v.IsActive,
		CreatedAt:       v.CreatedAt,
	}
}

func toVersionResponses(versions []domain.RosterVersion) []VersionResponse {
	out := make([]VersionResponse, 0, len(versions))
	for i := range versions {
		out = append(out, toVersionResponse(&versions[i]))
	}
	return out
}

func toDisruptionResponse(d *domain.Disruption) DisruptionResponse {
	crew := d.AffectedCrewIDs
	if crew == nil {
		crew = []string{}
	}
	return DisruptionResponse{
		ID:                d.ID.String(),
		Type:              d.Type,
		Severity:          d.Severity,
		AffectedFlightID:  d.AffectedFlightID,
		AffectedPairingID: d.AffectedPairingID,
		AffectedCrewIDs:   crew,
		Start:             d.Start,
		End:               d.End,
		RootCause:         d.RootCause,
		Description:       d.Description,
		Status:            d.Status.String(),
		CreatedAt:         d.CreatedAt,
	}
}

func toDisruptionResponses(disruptions []domain.Disruption) []DisruptionResponse {
	out := make([]DisruptionResponse, 0, len(disruptions))
	for i := range disruptions {
		out = append(out, toDisruptionResponse(&disruptions[i]))
	}
	return out
}
