package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestLoggingMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	mw := NewRequestLoggingMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))

	var seenID string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/roster/generate", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("User-Agent", "rosterctl/1.0")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get(RequestIDHeader))

	out := buf.String()
	for _, want := range []string{"POST", "/api/roster/generate", "status=201", "duration_ms", "192.168.1.1", "rosterctl/1.0", seenID} {
		assert.Contains(t, out, want)
	}
}

func TestRequestLoggingMiddleware_ReusesInboundRequestID(t *testing.T) {
	mw := NewRequestLoggingMiddleware(discardLogger())

	var seenID string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seenID)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestLoggingMiddleware_ServerErrorsLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	mw := NewRequestLoggingMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK) // ignored by the wrapper
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/rules", nil))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=500")
}

func TestRequestLoggingMiddleware_SkipsOpsEndpoints(t *testing.T) {
	tests := []struct {
		path   string
		logged bool
	}{
		{"/health", false},
		{"/metrics", false},
		{"/healthz-report", true},
		{"/api/rules", true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			var buf bytes.Buffer
			mw := NewRequestLoggingMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))

			called := false
			handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.True(t, called)
			assert.Equal(t, tc.logged, buf.Len() > 0)
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rawQuery string
		want     string
	}{
		{"no query", "/api/rules", "", "/api/rules"},
		{"plain params", "/api/roster/assignments", "start=2025-01-01&end=2025-01-31", "/api/roster/assignments?start=2025-01-01&end=2025-01-31"},
		{"redacts token", "/api/rules", "jurisdiction=FAA&token=abc", "/api/rules?jurisdiction=FAA&token=[REDACTED]"},
		{"case insensitive", "/x", "API_KEY=abc", "/x?API_KEY=[REDACTED]"},
		{"drops malformed parts", "/x", "flag", "/x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizePath(tc.path, tc.rawQuery))
		})
	}
}

func TestStack_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Stack(mark("outer"), mark("inner"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
