package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/service"
)

// DisruptionHandler serves the operational disruption log.
type DisruptionHandler struct {
	disruptions service.DisruptionService
	logger      *slog.Logger
}

// NewDisruptionHandler creates a new DisruptionHandler.
func NewDisruptionHandler(disruptions service.DisruptionService, logger *slog.Logger) *DisruptionHandler {
	return &DisruptionHandler{disruptions: disruptions, logger: logger}
}

// RegisterRoutes registers disruption routes.
//
// Routes:
// - GET   /api/disruptions?start=&end=&status= -> List
// - POST  /api/disruptions                     -> Create
// - PATCH /api/disruptions/{id}/status         -> UpdateStatus
func (h *DisruptionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/disruptions", h.List)
	mux.HandleFunc("POST /api/disruptions", h.Create)
	mux.HandleFunc("PATCH /api/disruptions/{id}/status", h.UpdateStatus)
}

// CreateDisruptionRequest records a new disruption.
type CreateDisruptionRequest struct {
	Type              string     `json:"disruption_type" validate:"required,max=50"`
	Severity          string     `json:"severity" validate:"required,max=20"`
	AffectedFlightID  string     `json:"affected_flight_id" validate:"max=50"`
	AffectedPairingID string     `json:"affected_pairing_id" validate:"max=50"`
	AffectedCrewIDs   []string   `json:"affected_crew_ids" validate:"omitempty,dive,required,max=64"`
	Start             time.Time  `json:"disruption_start" validate:"required"`
	End               *time.Time `json:"disruption_end"`
	RootCause         string     `json:"root_cause" validate:"max=500"`
	Description       string     `json:"description" validate:"max=2000"`
}

// UpdateStatusRequest moves a disruption along its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,disruptionstatus"`
}

// List returns disruptions starting within the optional date range, latest
// first. Both bounds are optional here.
func (h *DisruptionHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.disruption.list"

	q := r.URL.Query()
	start, err := parseDate(op, "start", q.Get("start"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	end, err := parseDate(op, "end", q.Get("end"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	disruptions, err := h.disruptions.List(r.Context(), domain.DisruptionFilter{
		StartDate: start,
		EndDate:   end,
		Status:    domain.DisruptionStatus(q.Get("status")),
	})
	ReadResponse(w, r, h.logger, toDisruptionResponses(disruptions), []DisruptionResponse{}, err)
}

// Create records a new open disruption.
func (h *DisruptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.disruption.create"

	var req CreateDisruptionRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := validateRequest(op, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	d, err := h.disruptions.Create(r.Context(), domain.CreateDisruptionParams{
		Type:              req.Type,
		Severity:          req.Severity,
		AffectedFlightID:  req.AffectedFlightID,
		AffectedPairingID: req.AffectedPairingID,
		AffectedCrewIDs:   req.AffectedCrewIDs,
		Start:             req.Start,
		End:               req.End,
		RootCause:         req.RootCause,
		Description:       req.Description,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Data: toDisruptionResponse(d)})
}

// UpdateStatus applies a lifecycle transition.
func (h *DisruptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handler.disruption.update_status"

	id, ok := pathUUID(r, "id")
	if !ok {
		NotFoundResponse(w, r, h.logger)
		return
	}

	var req UpdateStatusRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := validateRequest(op, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	d, err := h.disruptions.UpdateStatus(r.Context(), id, domain.DisruptionStatus(req.Status))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: toDisruptionResponse(d)})
}
