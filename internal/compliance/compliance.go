// Package compliance contains the pure windowed-aggregation logic used to
// check a crew member's duty history against regulatory rules.
// Functions here have no side effects; persistence is the caller's concern.
package compliance

import (
	"math"
	"time"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

const (
	// MaxDutyRecords bounds the lookback: only the most recent records are
	// considered, never the full history.
	MaxDutyRecords = 100

	// RestSampleSize is the number of most recent records scanned for rest gaps.
	RestSampleSize = 10

	// CriticalOverrunFactor marks an annual or monthly total as critical when
	// it exceeds limit times this factor.
	CriticalOverrunFactor = 1.1

	// CriticalRestFactor marks a rest gap as critical when it is below limit
	// times this factor.
	CriticalRestFactor = 0.8

	// valueScale is the number of decimal places current values are stored
	// with. Values are rounded to it before classification so a recorded
	// value always agrees with its severity.
	valueScale = 100
)

// Window lengths in days, ending on the reference date inclusive.
const (
	annualWindowDays  = 365
	monthlyWindowDays = 30
	weeklyWindowDays  = 7
)

// Outcome is the result of checking one rule against a duty history.
type Outcome struct {
	CurrentValue float64
	Severity     *domain.Severity
}

// IsCompliant returns true when no severity was assigned.
func (o Outcome) IsCompliant() bool {
	return o.Severity == nil
}

// Check evaluates rule against history as of asOf.
//
// history must be ordered most recent first. Records dated after asOf are
// ignored and at most MaxDutyRecords records are considered.
// flight_time and duty_time rules are not evaluated and always comply.
func Check(rule domain.RegulatoryRule, history []domain.DutyRecord, asOf time.Time) Outcome {
	records := Bounded(history, asOf)

	switch rule.Type {
	case domain.RuleTypeAnnual:
		return checkTotal(SumFlightHours(records, asOf, annualWindowDays), rule.LimitValue, true)
	case domain.RuleTypeMonthly:
		return checkTotal(SumFlightHours(records, asOf, monthlyWindowDays), rule.LimitValue, true)
	case domain.RuleTypeWeekly:
		return checkTotal(SumFlightHours(records, asOf, weeklyWindowDays), rule.LimitValue, false)
	case domain.RuleTypeRest:
		return checkRest(records, rule.LimitValue)
	}

	return Outcome{}
}

// Bounded returns the records dated on or before asOf, capped at
// MaxDutyRecords. The input order is preserved.
func Bounded(history []domain.DutyRecord, asOf time.Time) []domain.DutyRecord {
	day := domain.DateOnly(asOf)
	out := make([]domain.DutyRecord, 0, min(len(history), MaxDutyRecords))
	for _, r := range history {
		if domain.DateOnly(r.DutyDate).After(day) {
			continue
		}
		out = append(out, r)
		if len(out) == MaxDutyRecords {
			break
		}
	}
	return out
}

// SumFlightHours totals flight hours for records dated within the window
// [asOf - days, asOf], both ends inclusive.
func SumFlightHours(records []domain.DutyRecord, asOf time.Time, days int) float64 {
	end := domain.DateOnly(asOf)
	start := end.AddDate(0, 0, -days)

	var total float64
	for _, r := range records {
		d := domain.DateOnly(r.DutyDate)
		if d.Before(start) || d.After(end) {
			continue
		}
		total += r.FlightTimeHours
	}
	return total
}

// Round rounds v to the precision current values are stored with.
func Round(v float64) float64 {
	return math.Round(v*valueScale) / valueScale
}

func checkTotal(total, limit float64, hasCriticalTier bool) Outcome {
	total = Round(total)
	out := Outcome{CurrentValue: total}
	if total <= limit {
		return out
	}
	if hasCriticalTier && total > limit*CriticalOverrunFactor {
		out.Severity = severity(domain.SeverityCritical)
	} else {
		out.Severity = severity(domain.SeverityMajor)
	}
	return out
}

// checkRest scans consecutive pairs among the most recent records, newest
// pair first. The gap for a pair is the later duty's start minus the earlier
// duty's end. The first gap below limit ends the scan. Pairs with a missing
// start or end time are skipped.
func checkRest(records []domain.DutyRecord, limit float64) Outcome {
	if len(records) > RestSampleSize {
		records = records[:RestSampleSize]
	}

	out := Outcome{}
	seen := false
	for i := 0; i+1 < len(records); i++ {
		later, earlier := records[i], records[i+1]
		if later.DutyStart == nil || earlier.DutyEnd == nil {
			continue
		}

		gap := Round(later.DutyStart.Sub(*earlier.DutyEnd).Hours())
		if !seen || gap < out.CurrentValue {
			out.CurrentValue = gap
			seen = true
		}

		if gap < limit {
			if gap < limit*CriticalRestFactor {
				out.Severity = severity(domain.SeverityCritical)
			} else {
				out.Severity = severity(domain.SeverityMajor)
			}
			out.CurrentValue = gap
			return out
		}
	}
	return out
}

func severity(s domain.Severity) *domain.Severity {
	return &s
}
