package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour int) sql.NullTime {
	return sql.NullTime{Time: day.Add(time.Duration(hour) * time.Hour), Valid: true}
}

var errDB = errors.New("connection reset by peer")

// fakeStore is an in-memory repository.Store. Methods not overridden here
// panic through the nil embedded Querier.
type fakeStore struct {
	repository.Querier

	mu sync.Mutex

	rules    []repository.RegulatoryRule
	rulesErr error

	duty    map[string][]repository.CrewDutyHistory // most recent first
	dutyErr error

	evaluations  []repository.RuleEvaluation
	failEvalRule map[uuid.UUID]bool

	crew          []repository.CrewMember
	crewErr       error
	quals         map[string][]repository.CrewQualification
	qualCalls     int
	lastCrewQuery repository.ListAvailableCrewParams

	pairings    []repository.Pairing
	pairingsErr error
	legs        map[string][]repository.PairingLeg

	assignments      []repository.RosterAssignment
	versions         map[uuid.UUID]repository.RosterVersion
	failAssignmentAt int // 1-based index of the create call that fails; 0 never
	assignmentCalls  int
	failVersion      bool

	disruptions     map[uuid.UUID]repository.Disruption
	disruptionsErr  error
	lastDisruptions repository.ListDisruptionsParams

	txCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		duty:         make(map[string][]repository.CrewDutyHistory),
		failEvalRule: make(map[uuid.UUID]bool),
		quals:        make(map[string][]repository.CrewQualification),
		legs:         make(map[string][]repository.PairingLeg),
		versions:     make(map[uuid.UUID]repository.RosterVersion),
		disruptions:  make(map[uuid.UUID]repository.Disruption),
	}
}

// ExecTx runs fn against the same store and restores roster and disruption
// state when fn fails.
func (f *fakeStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	f.mu.Lock()
	f.txCount++
	assignments := append([]repository.RosterAssignment(nil), f.assignments...)
	versions := make(map[uuid.UUID]repository.RosterVersion, len(f.versions))
	for k, v := range f.versions {
		versions[k] = v
	}
	disruptions := make(map[uuid.UUID]repository.Disruption, len(f.disruptions))
	for k, v := range f.disruptions {
		disruptions[k] = v
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.assignments = assignments
		f.versions = versions
		f.disruptions = disruptions
		f.mu.Unlock()
		return err
	}
	return nil
}

// ===== rules =====

func (f *fakeStore) ListActiveRulesByJurisdiction(ctx context.Context, jurisdiction string) ([]repository.RegulatoryRule, error) {
	if f.rulesErr != nil {
		return nil, f.rulesErr
	}
	out := []repository.RegulatoryRule{}
	for _, r := range f.rules {
		if r.Jurisdiction == jurisdiction && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRulesByIDs(ctx context.Context, ruleIds []uuid.UUID) ([]repository.RegulatoryRule, error) {
	if f.rulesErr != nil {
		return nil, f.rulesErr
	}
	want := make(map[uuid.UUID]bool, len(ruleIds))
	for _, id := range ruleIds {
		want[id] = true
	}
	out := []repository.RegulatoryRule{}
	for _, r := range f.rules {
		if want[r.RuleID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// addRule stores a rule row and returns it as a domain rule.
func (f *fakeStore) addRule(code, ruleType, jurisdiction string, limit float64) domain.RegulatoryRule {
	row := ruleRow(code, ruleType, jurisdiction, limit)
	f.rules = append(f.rules, row)
	return ruleFromRow(row)
}

func (f *fakeStore) UpsertRegulatoryRule(ctx context.Context, arg repository.UpsertRegulatoryRuleParams) (repository.RegulatoryRule, error) {
	if f.rulesErr != nil {
		return repository.RegulatoryRule{}, f.rulesErr
	}
	row := repository.RegulatoryRule{
		RuleID:       uuid.New(),
		RuleCode:     arg.RuleCode,
		RuleName:     arg.RuleName,
		RuleType:     arg.RuleType,
		Jurisdiction: arg.Jurisdiction,
		LimitValue:   arg.LimitValue,
		LimitUnit:    arg.LimitUnit,
		Conditions:   arg.Conditions,
		IsActive:     arg.IsActive,
		RuleCategory: arg.RuleCategory,
	}
	for i, r := range f.rules {
		if r.RuleCode == arg.RuleCode {
			row.RuleID = r.RuleID
			f.rules[i] = row
			return row, nil
		}
	}
	f.rules = append(f.rules, row)
	return row, nil
}

// ===== duty history and evaluations =====

func (f *fakeStore) ListRecentDutyHistory(ctx context.Context, arg repository.ListRecentDutyHistoryParams) ([]repository.CrewDutyHistory, error) {
	if f.dutyErr != nil {
		return nil, f.dutyErr
	}
	out := []repository.CrewDutyHistory{}
	for _, r := range f.duty[arg.CrewID] {
		if r.DutyDate.After(arg.DutyDate) {
			continue
		}
		out = append(out, r)
		if int32(len(out)) == arg.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRuleEvaluation(ctx context.Context, arg repository.CreateRuleEvaluationParams) (repository.RuleEvaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failEvalRule[arg.RuleID] {
		return repository.RuleEvaluation{}, errDB
	}
	row := repository.RuleEvaluation{
		EvaluationID:      uuid.New(),
		CrewID:            arg.CrewID,
		RuleID:            arg.RuleID,
		EvaluationDate:    arg.EvaluationDate,
		EvaluationType:    arg.EvaluationType,
		CurrentValue:      arg.CurrentValue,
		LimitValue:        arg.LimitValue,
		IsCompliant:       arg.IsCompliant,
		ViolationSeverity: arg.ViolationSeverity,
		CreatedAt:         time.Now(),
	}
	f.evaluations = append(f.evaluations, row)
	return row, nil
}

func (f *fakeStore) ListRuleEvaluationsByCrew(ctx context.Context, arg repository.ListRuleEvaluationsByCrewParams) ([]repository.RuleEvaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []repository.RuleEvaluation{}
	for i := len(f.evaluations) - 1; i >= 0; i-- {
		if f.evaluations[i].CrewID == arg.CrewID {
			out = append(out, f.evaluations[i])
		}
		if int32(len(out)) == arg.Limit {
			break
		}
	}
	return out, nil
}

// ===== crew =====

func (f *fakeStore) ListAvailableCrew(ctx context.Context, arg repository.ListAvailableCrewParams) ([]repository.CrewMember, error) {
	f.mu.Lock()
	f.lastCrewQuery = arg
	f.mu.Unlock()

	if f.crewErr != nil {
		return nil, f.crewErr
	}
	out := []repository.CrewMember{}
	for _, c := range f.crew {
		if c.Status != "active" {
			continue
		}
		if arg.Base.Valid && c.Base != arg.Base.String {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) ListCrewQualifications(ctx context.Context, crewID string) ([]repository.CrewQualification, error) {
	f.mu.Lock()
	f.qualCalls++
	f.mu.Unlock()
	if f.crewErr != nil {
		return nil, f.crewErr
	}
	return f.quals[crewID], nil
}

// ===== pairings =====

func (f *fakeStore) ListDraftPairingsInPeriod(ctx context.Context, arg repository.ListDraftPairingsInPeriodParams) ([]repository.Pairing, error) {
	if f.pairingsErr != nil {
		return nil, f.pairingsErr
	}
	out := []repository.Pairing{}
	for _, p := range f.pairings {
		if p.Status != "draft" || p.StartDate.Before(arg.PeriodStart) || p.EndDate.After(arg.PeriodEnd) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (f *fakeStore) ListPairingLegs(ctx context.Context, pairingID string) ([]repository.PairingLeg, error) {
	return f.legs[pairingID], nil
}

// ===== roster =====

func (f *fakeStore) DeactivateActiveVersions(ctx context.Context, arg repository.DeactivateActiveVersionsParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for id, v := range f.versions {
		if v.IsActive && v.VersionType == arg.VersionType &&
			v.RosterPeriodStart.Equal(arg.RosterPeriodStart) && v.RosterPeriodEnd.Equal(arg.RosterPeriodEnd) {
			v.IsActive = false
			f.versions[id] = v
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateRosterAssignment(ctx context.Context, arg repository.CreateRosterAssignmentParams) (repository.RosterAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.assignmentCalls++
	if f.failAssignmentAt > 0 && f.assignmentCalls == f.failAssignmentAt {
		return repository.RosterAssignment{}, errDB
	}
	row := repository.RosterAssignment{
		AssignmentID:      uuid.New(),
		VersionID:         arg.VersionID,
		RosterPeriodStart: arg.RosterPeriodStart,
		RosterPeriodEnd:   arg.RosterPeriodEnd,
		CrewID:            arg.CrewID,
		PairingID:         arg.PairingID,
		AssignmentType:    arg.AssignmentType,
		StartDate:         arg.StartDate,
		EndDate:           arg.EndDate,
		Status:            arg.Status,
		CreatedAt:         time.Now(),
	}
	f.assignments = append(f.assignments, row)
	return row, nil
}

func (f *fakeStore) CreateRosterVersion(ctx context.Context, arg repository.CreateRosterVersionParams) (repository.RosterVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failVersion {
		return repository.RosterVersion{}, errDB
	}
	for _, v := range f.versions {
		if v.IsActive && v.VersionType == arg.VersionType &&
			v.RosterPeriodStart.Equal(arg.RosterPeriodStart) && v.RosterPeriodEnd.Equal(arg.RosterPeriodEnd) {
			return repository.RosterVersion{}, errors.New("duplicate key value violates unique constraint")
		}
	}
	row := repository.RosterVersion{
		VersionID:              arg.VersionID,
		RosterPeriodStart:      arg.RosterPeriodStart,
		RosterPeriodEnd:        arg.RosterPeriodEnd,
		VersionType:            arg.VersionType,
		OptimizationObjectives: arg.OptimizationObjectives,
		TotalViolations:        arg.TotalViolations,
		TotalCost:              arg.TotalCost,
		IsActive:               true,
		CreatedAt:              time.Now(),
	}
	f.versions[arg.VersionID] = row
	return row, nil
}

func (f *fakeStore) GetRosterVersion(ctx context.Context, versionID uuid.UUID) (repository.RosterVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.versions[versionID]
	if !ok {
		return repository.RosterVersion{}, sql.ErrNoRows
	}
	return v, nil
}

func (f *fakeStore) PublishRosterVersion(ctx context.Context, versionID uuid.UUID) (repository.RosterVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.versions[versionID]
	if !ok || v.VersionType != "draft" || !v.IsActive {
		return repository.RosterVersion{}, sql.ErrNoRows
	}
	v.VersionType = "published"
	f.versions[versionID] = v
	return v, nil
}

func (f *fakeStore) ListRosterVersions(ctx context.Context, arg repository.ListRosterVersionsParams) ([]repository.RosterVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []repository.RosterVersion{}
	for _, v := range f.versions {
		if !v.RosterPeriodStart.Before(arg.PeriodStart) && !v.RosterPeriodEnd.After(arg.PeriodEnd) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRosterAssignments(ctx context.Context, arg repository.ListRosterAssignmentsParams) ([]repository.RosterAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []repository.RosterAssignment{}
	for _, a := range f.assignments {
		if a.StartDate.After(arg.PeriodEnd) || a.EndDate.Before(arg.PeriodStart) {
			continue
		}
		if arg.CrewID.Valid && a.CrewID != arg.CrewID.String {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) ListRosterAssignmentsByVersion(ctx context.Context, versionID uuid.NullUUID) ([]repository.RosterAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []repository.RosterAssignment{}
	for _, a := range f.assignments {
		if a.VersionID == versionID {
			out = append(out, a)
		}
	}
	return out, nil
}

// activeDrafts returns the active draft versions of a period.
func (f *fakeStore) activeDrafts(start, end time.Time) []repository.RosterVersion {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []repository.RosterVersion
	for _, v := range f.versions {
		if v.IsActive && v.VersionType == "draft" && v.RosterPeriodStart.Equal(start) && v.RosterPeriodEnd.Equal(end) {
			out = append(out, v)
		}
	}
	return out
}

// ===== disruptions =====

func (f *fakeStore) ListDisruptions(ctx context.Context, arg repository.ListDisruptionsParams) ([]repository.Disruption, error) {
	f.lastDisruptions = arg
	if f.disruptionsErr != nil {
		return nil, f.disruptionsErr
	}
	out := []repository.Disruption{}
	for _, d := range f.disruptions {
		if arg.StartFrom.Valid && d.DisruptionStart.Before(arg.StartFrom.Time) {
			continue
		}
		if arg.StartBefore.Valid && !d.DisruptionStart.Before(arg.StartBefore.Time) {
			continue
		}
		if arg.Status.Valid && d.Status != arg.Status.String {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisruptionStart.After(out[j].DisruptionStart) })
	return out, nil
}

func (f *fakeStore) GetDisruption(ctx context.Context, id uuid.UUID) (repository.Disruption, error) {
	if f.disruptionsErr != nil {
		return repository.Disruption{}, f.disruptionsErr
	}
	d, ok := f.disruptions[id]
	if !ok {
		return repository.Disruption{}, sql.ErrNoRows
	}
	return d, nil
}

func (f *fakeStore) CreateDisruption(ctx context.Context, arg repository.CreateDisruptionParams) (repository.Disruption, error) {
	if f.disruptionsErr != nil {
		return repository.Disruption{}, f.disruptionsErr
	}
	row := repository.Disruption{
		DisruptionID:      uuid.New(),
		DisruptionType:    arg.DisruptionType,
		Severity:          arg.Severity,
		AffectedFlightID:  arg.AffectedFlightID,
		AffectedPairingID: arg.AffectedPairingID,
		AffectedCrewIds:   arg.AffectedCrewIds,
		DisruptionStart:   arg.DisruptionStart,
		DisruptionEnd:     arg.DisruptionEnd,
		RootCause:         arg.RootCause,
		Description:       arg.Description,
		Status:            arg.Status,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	f.disruptions[row.DisruptionID] = row
	return row, nil
}

func (f *fakeStore) UpdateDisruptionStatus(ctx context.Context, arg repository.UpdateDisruptionStatusParams) (repository.Disruption, error) {
	d, ok := f.disruptions[arg.DisruptionID]
	if !ok {
		return repository.Disruption{}, sql.ErrNoRows
	}
	d.Status = arg.Status
	d.UpdatedAt = time.Now()
	f.disruptions[arg.DisruptionID] = d
	return d, nil
}
