package purge_appointment

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

// Handle DELETE /api/v1/admin/appointments/{appointmentId}
// Окончательное удаление записи, доступно только администратору.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseAppointmentID(r)
	if err != nil {
		h.logger.Warn("DELETE /admin/appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidID)
		return
	}

	caller := middleware.CallerFromContext(r.Context())

	if err := h.service.Purge(r.Context(), caller, id); err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("DELETE /admin/appointments/{id} - Failed to purge appointment: id=%s, error=%v", id, err)
		} else {
			h.logger.Warn("DELETE /admin/appointments/{id} - Rejected: id=%s, caller=%s, status=%d, error=%v",
				id, caller.Email, status, err)
		}
		return
	}

	h.logger.Info("DELETE /admin/appointments/{id} - Appointment purged: id=%s, by=%s", id, caller.Email)
	handlers.RespondNoContent(w)
}
