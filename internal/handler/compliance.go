package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/service"
)

// ComplianceHandler serves compliance checks and the evaluation audit trail.
type ComplianceHandler struct {
	compliance   service.ComplianceService
	historyLimit int32
	logger       *slog.Logger
}

// NewComplianceHandler creates a new ComplianceHandler. historyLimit caps
// the evaluations returned per crew member when the request sets no limit.
func NewComplianceHandler(compliance service.ComplianceService, historyLimit int32, logger *slog.Logger) *ComplianceHandler {
	return &ComplianceHandler{
		compliance:   compliance,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// RegisterRoutes registers compliance routes.
//
// Routes:
// - POST /api/compliance/evaluate         -> Evaluate
// - GET  /api/crew/{crewID}/evaluations   -> History
func (h *ComplianceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/compliance/evaluate", h.Evaluate)
	mux.HandleFunc("GET /api/crew/{crewID}/evaluations", h.History)
}

// =============================================================================
// Requests
// =============================================================================

// EvaluateRequest asks for a compliance check of one crew member. RuleIDs
// names stored rules to check; the active catalog of Jurisdiction is used
// when none are given.
type EvaluateRequest struct {
	CrewID       string   `json:"crew_id" validate:"required,max=64"`
	AsOf         string   `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
	Jurisdiction string   `json:"jurisdiction" validate:"omitempty,max=16"`
	RuleIDs      []string `json:"rule_ids" validate:"omitempty,dive,uuid"`
}

func (req *EvaluateRequest) params() domain.EvaluateParams {
	params := domain.EvaluateParams{
		CrewID:       req.CrewID,
		Jurisdiction: req.Jurisdiction,
	}
	if req.AsOf != "" {
		// Already checked by validation.
		params.AsOf, _ = time.Parse(DateLayout, req.AsOf)
	}
	for _, id := range req.RuleIDs {
		params.RuleIDs = append(params.RuleIDs, uuid.MustParse(id))
	}
	return params
}

// =============================================================================
// Handlers
// =============================================================================

// Evaluate checks a crew member's duty history against regulatory rules.
// Rules whose evaluation could not be recorded are listed in
// failed_rule_ids; a failure to read the catalog or duty history degrades.
func (h *ComplianceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	const op = "handler.compliance.evaluate"

	var req EvaluateRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := validateRequest(op, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	result, err := h.compliance.Evaluate(r.Context(), req.params())
	empty := EvaluateResponse{CrewID: req.CrewID, Evaluations: []EvaluationResponse{}}
	if err != nil {
		ReadResponse(w, r, h.logger, nil, empty, err)
		return
	}
	ReadResponse(w, r, h.logger, toEvaluateResponse(req.CrewID, result), empty, nil)
}

// History lists a crew member's recorded evaluations, most recent first.
func (h *ComplianceHandler) History(w http.ResponseWriter, r *http.Request) {
	const op = "handler.compliance.history"

	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			ValidationErrorResponse(w, r, h.logger, domain.NewValidationError(op, "limit", "must be a positive integer"))
			return
		}
		limit = min(int32(n), h.historyLimit)
	}

	evals, err := h.compliance.History(r.Context(), r.PathValue("crewID"), limit)
	ReadResponse(w, r, h.logger, toEvaluationResponses(evals), []EvaluationResponse{}, err)
}
