package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

// Hand-written service fakes. Each records its last input and returns the
// configured values.

type fakeRuleService struct {
	rules        []domain.RegulatoryRule
	err          error
	jurisdiction string
}

func (f *fakeRuleService) ListActive(ctx context.Context, jurisdiction string) ([]domain.RegulatoryRule, error) {
	f.jurisdiction = jurisdiction
	return f.rules, f.err
}

func (f *fakeRuleService) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.RegulatoryRule, error) {
	return f.rules, f.err
}

func (f *fakeRuleService) Upsert(ctx context.Context, rules []domain.RegulatoryRule) ([]domain.RegulatoryRule, error) {
	return rules, f.err
}

func (f *fakeRuleService) DefaultJurisdiction() string { return "FAA" }

type fakeComplianceService struct {
	result      *domain.EvaluationResult
	history     []domain.RuleEvaluation
	err         error
	params      domain.EvaluateParams
	historyCrew string
	limit       int32
}

func (f *fakeComplianceService) Evaluate(ctx context.Context, params domain.EvaluateParams) (*domain.EvaluationResult, error) {
	f.params = params
	return f.result, f.err
}

func (f *fakeComplianceService) History(ctx context.Context, crewID string, limit int32) ([]domain.RuleEvaluation, error) {
	f.historyCrew = crewID
	f.limit = limit
	return f.history, f.err
}

type fakeAvailabilityService struct {
	crew   []domain.CrewMember
	err    error
	params domain.FindAvailableParams
}

func (f *fakeAvailabilityService) FindAvailable(ctx context.Context, params domain.FindAvailableParams) ([]domain.CrewMember, error) {
	f.params = params
	return f.crew, f.err
}

func (f *fakeAvailabilityService) Qualified(ctx context.Context, crewID string, codes []string) (bool, error) {
	return true, f.err
}

type fakeRosterService struct {
	result      *domain.GenerateRosterResult
	assignments []domain.RosterAssignment
	versions    []domain.RosterVersion
	version     *domain.RosterVersion
	err         error
	getErr      error

	generateParams domain.GenerateRosterParams
	listParams     domain.ListAssignmentsParams
}

func (f *fakeRosterService) GenerateDraft(ctx context.Context, params domain.GenerateRosterParams) (*domain.GenerateRosterResult, error) {
	f.generateParams = params
	return f.result, f.err
}

func (f *fakeRosterService) ListAssignments(ctx context.Context, params domain.ListAssignmentsParams) ([]domain.RosterAssignment, error) {
	f.listParams = params
	return f.assignments, f.err
}

func (f *fakeRosterService) ListVersions(ctx context.Context, start, end time.Time) ([]domain.RosterVersion, error) {
	return f.versions, f.err
}

func (f *fakeRosterService) GetVersion(ctx context.Context, id uuid.UUID) (*domain.RosterVersion, []domain.RosterAssignment, error) {
	if f.getErr != nil {
		return nil, nil, f.getErr
	}
	return f.version, f.assignments, nil
}

func (f *fakeRosterService) Publish(ctx context.Context, id uuid.UUID) (*domain.RosterVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	v := *f.version
	v.Type = domain.VersionTypePublished
	return &v, nil
}

type fakeDisruptionService struct {
	disruptions []domain.Disruption
	err         error
	filter      domain.DisruptionFilter
	created     domain.CreateDisruptionParams
	status      domain.DisruptionStatus
}

func (f *fakeDisruptionService) List(ctx context.Context, filter domain.DisruptionFilter) ([]domain.Disruption, error) {
	f.filter = filter
	return f.disruptions, f.err
}

func (f *fakeDisruptionService) Create(ctx context.Context, params domain.CreateDisruptionParams) (*domain.Disruption, error) {
	f.created = params
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Disruption{
		ID:              uuid.New(),
		Type:            params.Type,
		Severity:        params.Severity,
		AffectedCrewIDs: params.AffectedCrewIDs,
		Start:           params.Start,
		Status:          domain.DisruptionStatusOpen,
	}, nil
}

func (f *fakeDisruptionService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DisruptionStatus) (*domain.Disruption, error) {
	f.status = status
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Disruption{ID: id, Type: "weather", Severity: "high", Status: status}, nil
}

type fakeEnqueuer struct {
	jobID     uuid.UUID
	err       error
	versionID uuid.UUID
}

func (f *fakeEnqueuer) EnqueueExport(ctx context.Context, versionID uuid.UUID) (uuid.UUID, error) {
	f.versionID = versionID
	return f.jobID, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

// =============================================================================
// Helpers
// =============================================================================

func passthrough(next http.Handler) http.Handler { return next }

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}
