package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) JSONError {
	t.Helper()
	var body JSONError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// =============================================================================
// Error Response Tests - Security Focus
// =============================================================================

func TestValidationErrorResponse_DoesNotExposeOperationName(t *testing.T) {
	ve := domain.NewValidationError("RosterService.GenerateDraft", "period_start", "is required")

	req := httptest.NewRequest(http.MethodPost, "/api/roster/generate", nil)
	rec := httptest.NewRecorder()
	ValidationErrorResponse(rec, req, discardLogger(), ve)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "RosterService")
	assert.NotContains(t, rec.Body.String(), "GenerateDraft")

	body := decodeError(t, rec)
	assert.Equal(t, domain.EINVALID, body.Error.Code)
	assert.Equal(t, "Validation failed", body.Error.Message)
	assert.Equal(t, "is required", body.Error.Fields["period_start"])
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	err := domain.Internal(errors.New(`pq: relation "roster_versions" does not exist`), "roster.generate", "failed to create version")

	req := httptest.NewRequest(http.MethodPost, "/api/roster/generate", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, discardLogger(), err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "pq:")
	assert.NotContains(t, rec.Body.String(), "roster.generate")

	body := decodeError(t, rec)
	assert.Equal(t, domain.EINTERNAL, body.Error.Code)
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, discardLogger(), errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.ERATELIMIT, http.StatusTooManyRequests},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestReadResponse(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantDegraded bool
	}{
		{"success", nil, http.StatusOK, false},
		{"internal failure degrades", domain.Failure(domain.ErrCatalogUnavailable, errors.New("timeout"), "rule.list_active", "failed"), http.StatusOK, true},
		{"client error passes through", domain.Invalid("rule.list_active", "bad input"), http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
			rec := httptest.NewRecorder()
			ReadResponse(rec, req, discardLogger(), []string{"a"}, []string{}, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Data     []string `json:"data"`
				Degraded bool     `json:"degraded"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDegraded, body.Degraded)
			if tt.wantDegraded {
				assert.NotNil(t, body.Data)
				assert.Empty(t, body.Data)
			} else {
				assert.Equal(t, []string{"a"}, body.Data)
			}
		})
	}
}
