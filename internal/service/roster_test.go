package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

var (
	periodStart = d(2025, 1, 1)
	periodEnd   = d(2025, 1, 31)
)

func pairingRow(id, base string, start time.Time, days int, quals ...string) repository.Pairing {
	if quals == nil {
		quals = []string{}
	}
	return repository.Pairing{
		PairingID:              id,
		StartDate:              start,
		EndDate:                start.AddDate(0, 0, days),
		StartBase:              base,
		EndBase:                base,
		TotalFlightHours:       6,
		TotalCreditHours:       7,
		RequiredQualifications: quals,
		Status:                 "draft",
	}
}

func newTestRosterService(store *fakeStore, cfg RosterServiceConfig) RosterService {
	today := func() time.Time { return d(2025, 1, 1) }
	rules := NewRuleService(store, "FAA", testLogger())
	comp := &complianceService{store: store, rules: rules, logger: testLogger(), now: today}
	avail := &availabilityService{store: store, logger: testLogger(), now: today}
	return NewRosterService(store, rules, comp, avail, cfg, testLogger())
}

func generate(t *testing.T, svc RosterService) *domain.GenerateRosterResult {
	t.Helper()
	result, err := svc.GenerateDraft(context.Background(), domain.GenerateRosterParams{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	require.NoError(t, err)
	return result
}

func assignedCrew(result *domain.GenerateRosterResult) map[string]string {
	out := make(map[string]string, len(result.Assignments))
	for _, a := range result.Assignments {
		out[a.PairingID] = a.CrewID
	}
	return out
}

// =============================================================================
// GenerateDraft
// =============================================================================

func TestRosterService_GenerateDraft_EmptyPeriod(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY")}
	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})

	result := generate(t, svc)

	assert.Equal(t, 0, result.ViolationCount)
	assert.NotNil(t, result.Assignments)
	assert.Empty(t, result.Assignments)
	assert.Empty(t, result.UnassignedPairingIDs)

	drafts := store.activeDrafts(periodStart, periodEnd)
	require.Len(t, drafts, 1)
	assert.Equal(t, result.VersionID, drafts[0].VersionID)
	assert.Equal(t, int32(0), drafts[0].TotalViolations)
}

func TestRosterService_GenerateDraft_AssignsByBase(t *testing.T) {
	store := newFakeStore()
	store.rules = []repository.RegulatoryRule{ruleRow("FAA-117-W", "weekly", "FAA", 30)}
	store.crew = []repository.CrewMember{crewRow("C1", "PTY"), crewRow("C2", "MIA")}
	store.duty["C1"] = dutyDays("C1", d(2025, 1, 1), 8, 8, 8, 8)
	store.pairings = []repository.Pairing{
		pairingRow("P1", "PTY", d(2025, 1, 2), 1),
		pairingRow("P2", "MIA", d(2025, 1, 4), 1),
		pairingRow("P3", "BOG", d(2025, 1, 6), 0),
	}

	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})
	result := generate(t, svc)

	assert.Equal(t, map[string]string{"P1": "C1", "P2": "C2"}, assignedCrew(result))
	assert.Equal(t, []string{"P3"}, result.UnassignedPairingIDs)
	assert.Equal(t, 1, result.ViolationCount, "C1 flew 32h in the week before P1")

	for _, a := range result.Assignments {
		require.NotNil(t, a.VersionID)
		assert.Equal(t, result.VersionID, *a.VersionID)
		assert.Equal(t, domain.AssignmentTypePairing, a.Type)
		assert.Equal(t, domain.AssignmentStatusScheduled, a.Status)
	}

	assert.Len(t, store.assignments, 2)
	assert.Len(t, store.evaluations, 2, "one weekly evaluation per assignment")

	drafts := store.activeDrafts(periodStart, periodEnd)
	require.Len(t, drafts, 1)
	assert.Equal(t, int32(1), drafts[0].TotalViolations)
}

func TestRosterService_GenerateDraft_PoolPolicy(t *testing.T) {
	tests := []struct {
		name           string
		exclusive      bool
		wantAssigned   int
		wantUnassigned []string
	}{
		{"exclusive pool books each crew once", true, 1, []string{"P2"}},
		{"shared pool reuses crew", false, 2, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			store.crew = []repository.CrewMember{crewRow("C1", "PTY")}
			store.pairings = []repository.Pairing{
				pairingRow("P1", "PTY", d(2025, 1, 2), 1),
				pairingRow("P2", "PTY", d(2025, 1, 5), 1),
			}

			result := generate(t, newTestRosterService(store, RosterServiceConfig{ExclusivePool: tc.exclusive}))

			assert.Len(t, result.Assignments, tc.wantAssigned)
			assert.Equal(t, tc.wantUnassigned, result.UnassignedPairingIDs)
			for _, a := range result.Assignments {
				assert.Equal(t, "C1", a.CrewID)
			}
		})
	}
}

func TestRosterService_GenerateDraft_RequireQualifications(t *testing.T) {
	tests := []struct {
		name    string
		require bool
		want    string
	}{
		{"base match only", false, "C1"},
		{"qualifications enforced", true, "C2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			store.crew = []repository.CrewMember{crewRow("C1", "PTY"), crewRow("C2", "PTY")}
			store.quals["C2"] = []repository.CrewQualification{qualRow("C2", "B737", nil)}
			store.pairings = []repository.Pairing{pairingRow("P1", "PTY", d(2025, 1, 2), 1, "B737")}

			result := generate(t, newTestRosterService(store, RosterServiceConfig{
				ExclusivePool:         true,
				RequireQualifications: tc.require,
			}))
			assert.Equal(t, map[string]string{"P1": tc.want}, assignedCrew(result))
		})
	}
}

func TestRosterService_GenerateDraft_RegenerateReplacesDraft(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY"), crewRow("C2", "MIA")}
	store.pairings = []repository.Pairing{
		pairingRow("P1", "PTY", d(2025, 1, 2), 1),
		pairingRow("P2", "MIA", d(2025, 1, 4), 1),
	}
	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})

	first := generate(t, svc)
	second := generate(t, svc)

	assert.NotEqual(t, first.VersionID, second.VersionID)
	assert.Equal(t, assignedCrew(first), assignedCrew(second))
	assert.Equal(t, first.ViolationCount, second.ViolationCount)

	drafts := store.activeDrafts(periodStart, periodEnd)
	require.Len(t, drafts, 1)
	assert.Equal(t, second.VersionID, drafts[0].VersionID)
	assert.False(t, store.versions[first.VersionID].IsActive)
}

func TestRosterService_GenerateDraft_ConcurrentRunsLeaveOneActiveDraft(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY")}
	store.pairings = []repository.Pairing{pairingRow("P1", "PTY", d(2025, 1, 2), 1)}
	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.GenerateDraft(context.Background(), domain.GenerateRosterParams{
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, store.activeDrafts(periodStart, periodEnd), 1)
	assert.Len(t, store.versions, 5)
}

func TestRosterService_GenerateDraft_PersistFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY"), crewRow("C2", "MIA")}
	store.pairings = []repository.Pairing{
		pairingRow("P1", "PTY", d(2025, 1, 2), 1),
		pairingRow("P2", "MIA", d(2025, 1, 4), 1),
	}
	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})

	previous := generate(t, svc)
	require.Len(t, store.assignments, 2)

	// Fail the second assignment of the next run.
	store.failAssignmentAt = store.assignmentCalls + 2

	_, err := svc.GenerateDraft(context.Background(), domain.GenerateRosterParams{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAssignmentPersistFailure))
	assert.True(t, errors.Is(err, errDB))

	assert.Len(t, store.assignments, 2, "partial assignments are rolled back")
	assert.Len(t, store.versions, 1)
	drafts := store.activeDrafts(periodStart, periodEnd)
	require.Len(t, drafts, 1)
	assert.Equal(t, previous.VersionID, drafts[0].VersionID, "previous draft stays active")
}

func TestRosterService_GenerateDraft_EvaluationFailureAbortsRun(t *testing.T) {
	store := newFakeStore()
	weekly := ruleRow("FAA-117-W", "weekly", "FAA", 30)
	store.rules = []repository.RegulatoryRule{weekly}
	store.failEvalRule[weekly.RuleID] = true
	store.crew = []repository.CrewMember{crewRow("C1", "PTY")}
	store.duty["C1"] = dutyDays("C1", d(2025, 1, 1), 8, 8, 8, 8)
	store.pairings = []repository.Pairing{pairingRow("P1", "PTY", d(2025, 1, 2), 1)}

	result, err := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true}).GenerateDraft(context.Background(), domain.GenerateRosterParams{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrAssignmentPersistFailure))
	assert.True(t, errors.Is(err, domain.ErrEvaluationPersistFailure))
	assert.True(t, errors.Is(err, errDB))

	assert.Zero(t, store.txCount, "no draft transaction is opened")
	assert.Empty(t, store.assignments)
	assert.Empty(t, store.versions)
}

func TestRosterService_GenerateDraft_VersionFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY")}
	store.pairings = []repository.Pairing{pairingRow("P1", "PTY", d(2025, 1, 2), 1)}
	store.failVersion = true

	_, err := newTestRosterService(store, RosterServiceConfig{}).GenerateDraft(context.Background(), domain.GenerateRosterParams{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	assert.True(t, errors.Is(err, domain.ErrAssignmentPersistFailure))
	assert.Empty(t, store.assignments)
}

func TestRosterService_GenerateDraft_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*fakeStore)
		params   domain.GenerateRosterParams
		wantCode string
		wantKind error
	}{
		{
			name:     "end before start",
			params:   domain.GenerateRosterParams{PeriodStart: periodEnd, PeriodEnd: periodStart},
			wantCode: domain.EINVALID,
		},
		{
			name:     "malformed objectives",
			params:   domain.GenerateRosterParams{PeriodStart: periodStart, PeriodEnd: periodEnd, Objectives: json.RawMessage(`{"cost":`)},
			wantCode: domain.EINVALID,
		},
		{
			name:     "pairings unreadable",
			setup:    func(s *fakeStore) { s.pairingsErr = errDB },
			params:   domain.GenerateRosterParams{PeriodStart: periodStart, PeriodEnd: periodEnd},
			wantCode: domain.EINTERNAL,
		},
		{
			name:     "availability unreadable",
			setup:    func(s *fakeStore) { s.crewErr = errDB },
			params:   domain.GenerateRosterParams{PeriodStart: periodStart, PeriodEnd: periodEnd},
			wantCode: domain.EINTERNAL,
			wantKind: domain.ErrAvailabilityQueryFailure,
		},
		{
			name:     "catalog unavailable",
			setup:    func(s *fakeStore) { s.rulesErr = errDB },
			params:   domain.GenerateRosterParams{PeriodStart: periodStart, PeriodEnd: periodEnd},
			wantCode: domain.EINTERNAL,
			wantKind: domain.ErrCatalogUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			if tc.setup != nil {
				tc.setup(store)
			}
			_, err := newTestRosterService(store, RosterServiceConfig{}).GenerateDraft(context.Background(), tc.params)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, domain.ErrorCode(err))
			if tc.wantKind != nil {
				assert.True(t, errors.Is(err, tc.wantKind))
			}
			assert.Empty(t, store.versions)
		})
	}
}

// =============================================================================
// Queries
// =============================================================================

func TestRosterService_Queries(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY"), crewRow("C2", "MIA")}
	store.pairings = []repository.Pairing{
		pairingRow("P1", "PTY", d(2025, 1, 2), 1),
		pairingRow("P2", "MIA", d(2025, 1, 20), 1),
	}
	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})
	result := generate(t, svc)

	version, assignments, err := svc.GetVersion(context.Background(), result.VersionID)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionTypeDraft, version.Type)
	assert.True(t, version.IsActive)
	assert.Len(t, assignments, 2)

	_, _, err = svc.GetVersion(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	mine, err := svc.ListAssignments(context.Background(), domain.ListAssignmentsParams{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		CrewID:      "C2",
	})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "P2", mine[0].PairingID)

	firstWeek, err := svc.ListAssignments(context.Background(), domain.ListAssignmentsParams{
		PeriodStart: d(2025, 1, 1),
		PeriodEnd:   d(2025, 1, 7),
	})
	require.NoError(t, err)
	assert.Len(t, firstWeek, 1)

	versions, err := svc.ListVersions(context.Background(), periodStart, periodEnd)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

// =============================================================================
// Publish
// =============================================================================

func TestRosterService_Publish(t *testing.T) {
	store := newFakeStore()
	store.crew = []repository.CrewMember{crewRow("C1", "PTY")}
	store.pairings = []repository.Pairing{pairingRow("P1", "PTY", d(2025, 1, 2), 1)}
	svc := newTestRosterService(store, RosterServiceConfig{ExclusivePool: true})

	stale := generate(t, svc)
	draft := generate(t, svc)

	_, err := svc.Publish(context.Background(), stale.VersionID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err), "inactive draft cannot be published")

	published, err := svc.Publish(context.Background(), draft.VersionID)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionTypePublished, published.Type)
	assert.True(t, published.IsActive)

	_, err = svc.Publish(context.Background(), draft.VersionID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err), "already published")

	_, err = svc.Publish(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	// A newer draft retires the previously published version on publish.
	next := generate(t, svc)
	_, err = svc.Publish(context.Background(), next.VersionID)
	require.NoError(t, err)
	assert.False(t, store.versions[draft.VersionID].IsActive)
	assert.True(t, store.versions[next.VersionID].IsActive)
}
