package metrics

import "time"

// EvaluationRecorded records one persisted rule evaluation. severity is empty
// for a compliant evaluation.
func EvaluationRecorded(ruleType, severity string) {
	if severity == "" {
		EvaluationsTotal.WithLabelValues(ruleType, "compliant").Inc()
		return
	}
	EvaluationsTotal.WithLabelValues(ruleType, "violation").Inc()
	ViolationsTotal.WithLabelValues(ruleType, severity).Inc()
}

// EvaluationPersistFailed records a rule evaluation that could not be stored.
func EvaluationPersistFailed(ruleType string) {
	EvaluationsTotal.WithLabelValues(ruleType, "persist_failed").Inc()
}

// RosterGenerated records a successful generation run.
func RosterGenerated(assignments, unassigned int, duration time.Duration) {
	RosterGenerationsTotal.WithLabelValues("success").Inc()
	RosterGenerationDuration.Observe(duration.Seconds())
	RosterAssignmentsCreated.Add(float64(assignments))
	RosterUnassignedPairings.Add(float64(unassigned))
}

// RosterGenerationFailed records a generation run that was rolled back.
func RosterGenerationFailed(duration time.Duration) {
	RosterGenerationsTotal.WithLabelValues("failed").Inc()
	RosterGenerationDuration.Observe(duration.Seconds())
}
