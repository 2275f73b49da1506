package handler

import (
	"log/slog"
	"net/http"

	"github.com/raviagarwal526/aioscrew/internal/service"
)

// RuleHandler serves the regulatory rule catalog.
type RuleHandler struct {
	rules  service.RuleService
	logger *slog.Logger
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(rules service.RuleService, logger *slog.Logger) *RuleHandler {
	return &RuleHandler{rules: rules, logger: logger}
}

// RegisterRoutes registers rule routes.
//
// Routes:
// - GET /api/rules?jurisdiction= -> List
func (h *RuleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/rules", h.List)
}

// List returns the active rules of a jurisdiction, the default one when the
// query parameter is absent.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rules.ListActive(r.Context(), r.URL.Query().Get("jurisdiction"))
	ReadResponse(w, r, h.logger, toRuleResponses(rules), []RuleResponse{}, err)
}
