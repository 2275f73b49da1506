package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/service"
)

// ExportEnqueuer schedules asynchronous roster snapshot exports.
type ExportEnqueuer interface {
	EnqueueExport(ctx context.Context, versionID uuid.UUID) (uuid.UUID, error)
}

// RosterHandler serves roster generation, versions and assignments.
type RosterHandler struct {
	roster  service.RosterService
	exports ExportEnqueuer
	logger  *slog.Logger
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster service.RosterService, exports ExportEnqueuer, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{
		roster:  roster,
		exports: exports,
		logger:  logger,
	}
}

// RegisterRoutes registers roster routes. limitGenerate wraps the generation
// endpoint, typically with a rate limiter.
//
// Routes:
// - POST /api/roster/generate                 -> Generate
// - GET  /api/roster/assignments              -> Assignments
// - GET  /api/roster/versions                 -> Versions
// - GET  /api/roster/versions/{id}            -> Version
// - POST /api/roster/versions/{id}/publish    -> Publish
// - POST /api/roster/versions/{id}/export     -> Export
func (h *RosterHandler) RegisterRoutes(mux *http.ServeMux, limitGenerate func(http.Handler) http.Handler) {
	mux.Handle("POST /api/roster/generate", limitGenerate(http.HandlerFunc(h.Generate)))
	mux.HandleFunc("GET /api/roster/assignments", h.Assignments)
	mux.HandleFunc("GET /api/roster/versions", h.Versions)
	mux.HandleFunc("GET /api/roster/versions/{id}", h.Version)
	mux.HandleFunc("POST /api/roster/versions/{id}/publish", h.Publish)
	mux.HandleFunc("POST /api/roster/versions/{id}/export", h.Export)
}

// GenerateRequest asks for a draft roster of a period.
type GenerateRequest struct {
	PeriodStart string          `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string          `json:"period_end" validate:"required,datetime=2006-01-02"`
	Objectives  json.RawMessage `json:"optimization_objectives"`
}

// Generate runs roster generation for a period. Failures are never
// degraded: the client gets an error and must retry.
func (h *RosterHandler) Generate(w http.ResponseWriter, r *http.Request) {
	const op = "handler.roster.generate"

	var req GenerateRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := validateRequest(op, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	start, _ := time.Parse(DateLayout, req.PeriodStart)
	end, _ := time.Parse(DateLayout, req.PeriodEnd)

	result, err := h.roster.GenerateDraft(r.Context(), domain.GenerateRosterParams{
		PeriodStart: start,
		PeriodEnd:   end,
		Objectives:  req.Objectives,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	unassigned := result.UnassignedPairingIDs
	if unassigned == nil {
		unassigned = []string{}
	}
	writeJSON(w, http.StatusCreated, envelope{Data: GenerateResponse{
		VersionID:            result.VersionID.String(),
		Assignments:          toAssignmentResponses(result.Assignments),
		ViolationCount:       result.ViolationCount,
		TotalCost:            result.TotalCost,
		UnassignedPairingIDs: unassigned,
	}})
}

// Assignments lists assignments overlapping [start, end], optionally for
// one crew member.
func (h *RosterHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	const op = "handler.roster.assignments"

	start, end, err := queryRange(r, op)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	assignments, err := h.roster.ListAssignments(r.Context(), domain.ListAssignmentsParams{
		PeriodStart: start,
		PeriodEnd:   end,
		CrewID:      r.URL.Query().Get("crew_id"),
	})
	ReadResponse(w, r, h.logger, toAssignmentResponses(assignments), []AssignmentResponse{}, err)
}

// Versions lists roster versions whose period lies within [start, end].
func (h *RosterHandler) Versions(w http.ResponseWriter, r *http.Request) {
	const op = "handler.roster.versions"

	start, end, err := queryRange(r, op)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	versions, err := h.roster.ListVersions(r.Context(), start, end)
	ReadResponse(w, r, h.logger, toVersionResponses(versions), []VersionResponse{}, err)
}

// Version returns one version with its assignments.
func (h *RosterHandler) Version(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		NotFoundResponse(w, r, h.logger)
		return
	}

	version, assignments, err := h.roster.GetVersion(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Data: VersionDetailResponse{
		VersionResponse: toVersionResponse(version),
		Assignments:     toAssignmentResponses(assignments),
	}})
}

// Publish promotes an active draft to the published roster of its period.
func (h *RosterHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		NotFoundResponse(w, r, h.logger)
		return
	}

	version, err := h.roster.Publish(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: toVersionResponse(version)})
}

// Export schedules a snapshot export of a version and answers 202 with the
// job ID.
func (h *RosterHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		NotFoundResponse(w, r, h.logger)
		return
	}

	// Unknown versions are rejected here rather than failing in the worker.
	if _, _, err := h.roster.GetVersion(r.Context(), id); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	jobID, err := h.exports.EnqueueExport(r.Context(), id)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}

	h.logger.Info("roster export enqueued", "version_id", id, "job_id", jobID)
	writeJSON(w, http.StatusAccepted, envelope{Data: map[string]string{
		"job_id":     jobID.String(),
		"version_id": id.String(),
	}})
}
