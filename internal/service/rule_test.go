package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

func ruleRow(code, ruleType, jurisdiction string, limit float64) repository.RegulatoryRule {
	return repository.RegulatoryRule{
		RuleID:       uuid.New(),
		RuleCode:     code,
		RuleName:     code,
		RuleType:     ruleType,
		Jurisdiction: jurisdiction,
		LimitValue:   limit,
		LimitUnit:    "hours",
		IsActive:     true,
	}
}

func TestRuleService_ListActive(t *testing.T) {
	store := newFakeStore()
	store.rules = []repository.RegulatoryRule{
		ruleRow("FAA-117-W", "weekly", "FAA", 30),
		ruleRow("FAA-117-R", "rest", "FAA", 10),
		ruleRow("EASA-FTL-W", "weekly", "EASA", 60),
	}
	inactive := ruleRow("FAA-OLD", "annual", "FAA", 900)
	inactive.IsActive = false
	store.rules = append(store.rules, inactive)

	svc := NewRuleService(store, "faa", testLogger())

	tests := []struct {
		name         string
		jurisdiction string
		wantCodes    []string
	}{
		{"empty resolves to default", "", []string{"FAA-117-W", "FAA-117-R"}},
		{"case insensitive", " easa ", []string{"EASA-FTL-W"}},
		{"unknown jurisdiction is empty", "TCCA", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := svc.ListActive(context.Background(), tc.jurisdiction)
			require.NoError(t, err)

			codes := make([]string, 0, len(rules))
			for _, r := range rules {
				codes = append(codes, r.Code)
			}
			assert.Equal(t, tc.wantCodes, codes)
		})
	}

	assert.Equal(t, "FAA", svc.DefaultJurisdiction())
}

func TestRuleService_ListActive_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.rulesErr = errDB
	svc := NewRuleService(store, "FAA", testLogger())

	_, err := svc.ListActive(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
	assert.True(t, errors.Is(err, errDB))
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestRuleService_ListByIDs(t *testing.T) {
	store := newFakeStore()
	weekly := store.addRule("FAA-117-W", "weekly", "FAA", 30)
	easa := store.addRule("EASA-FTL-R", "rest", "EASA", 12)
	inactive := ruleRow("FAA-OLD", "annual", "FAA", 900)
	inactive.IsActive = false
	store.rules = append(store.rules, inactive)

	svc := NewRuleService(store, "FAA", testLogger())

	tests := []struct {
		name     string
		ids      []uuid.UUID
		wantIDs  []uuid.UUID
		wantCode string
	}{
		{"none", nil, []uuid.UUID{}, ""},
		{"across jurisdictions", []uuid.UUID{weekly.ID, easa.ID}, []uuid.UUID{weekly.ID, easa.ID}, ""},
		{"inactive rules are returned", []uuid.UUID{inactive.RuleID}, []uuid.UUID{inactive.RuleID}, ""},
		{"duplicates collapse", []uuid.UUID{weekly.ID, weekly.ID}, []uuid.UUID{weekly.ID}, ""},
		{"unknown id", []uuid.UUID{weekly.ID, uuid.New()}, nil, domain.EINVALID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := svc.ListByIDs(context.Background(), tc.ids)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, domain.ErrorCode(err))
				return
			}
			require.NoError(t, err)

			ids := make([]uuid.UUID, len(rules))
			for i, r := range rules {
				ids[i] = r.ID
			}
			assert.ElementsMatch(t, tc.wantIDs, ids)
		})
	}

	store.rulesErr = errDB
	_, err := svc.ListByIDs(context.Background(), []uuid.UUID{weekly.ID})
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
}

func TestRuleService_Upsert(t *testing.T) {
	store := newFakeStore()
	svc := NewRuleService(store, "FAA", testLogger())

	stored, err := svc.Upsert(context.Background(), []domain.RegulatoryRule{
		{Code: "FAA-117-M", Name: "Monthly flight time", Type: domain.RuleTypeMonthly, Jurisdiction: "faa", LimitValue: 100, IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hours", stored[0].LimitUnit)
	assert.Equal(t, "FAA", stored[0].Jurisdiction)

	// Same code updates in place.
	again, err := svc.Upsert(context.Background(), []domain.RegulatoryRule{
		{Code: "FAA-117-M", Name: "Monthly flight time", Type: domain.RuleTypeMonthly, Jurisdiction: "FAA", LimitValue: 90, IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, stored[0].ID, again[0].ID)
	assert.Len(t, store.rules, 1)
	assert.Equal(t, 90.0, store.rules[0].LimitValue)
}

func TestRuleService_Upsert_Validation(t *testing.T) {
	svc := NewRuleService(newFakeStore(), "FAA", testLogger())

	tests := []struct {
		name string
		rule domain.RegulatoryRule
	}{
		{"missing code", domain.RegulatoryRule{Name: "x", Type: domain.RuleTypeWeekly}},
		{"unknown type", domain.RegulatoryRule{Code: "X", Name: "x", Type: "fortnightly"}},
		{"negative limit", domain.RegulatoryRule{Code: "X", Name: "x", Type: domain.RuleTypeWeekly, LimitValue: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), []domain.RegulatoryRule{tc.rule})
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}
