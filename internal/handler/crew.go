package handler

import (
	"log/slog"
	"net/http"

	"github.com/raviagarwal526/aioscrew/internal/domain"
	"github.com/raviagarwal526/aioscrew/internal/service"
)

// CrewHandler serves crew availability queries.
type CrewHandler struct {
	availability service.AvailabilityService
	logger       *slog.Logger
}

// NewCrewHandler creates a new CrewHandler.
func NewCrewHandler(availability service.AvailabilityService, logger *slog.Logger) *CrewHandler {
	return &CrewHandler{availability: availability, logger: logger}
}

// RegisterRoutes registers crew routes.
//
// Routes:
// - GET /api/crew/available?start=&end=&base=&qualifications= -> Available
func (h *CrewHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/crew/available", h.Available)
}

// Available lists active crew free of leave, medical and training records
// over [start, end]. qualifications is a comma-separated list of codes that
// must all be held.
func (h *CrewHandler) Available(w http.ResponseWriter, r *http.Request) {
	const op = "handler.crew.available"

	start, end, err := queryRange(r, op)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	q := r.URL.Query()
	crew, err := h.availability.FindAvailable(r.Context(), domain.FindAvailableParams{
		Start:          start,
		End:            end,
		Base:           q.Get("base"),
		Qualifications: splitList(q.Get("qualifications")),
	})
	ReadResponse(w, r, h.logger, toCrewResponses(crew), []CrewResponse{}, err)
}
