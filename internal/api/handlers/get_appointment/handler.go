package get_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseAppointmentID(r)
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidID)
		return
	}

	caller := middleware.CallerFromContext(r.Context())

	result, err := h.service.GetByID(r.Context(), caller, id)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: id=%s, error=%v", id, err)
		} else {
			h.logger.Warn("GET /appointments/{id} - Rejected: id=%s, status=%d, error=%v", id, status, err)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
