package update_appointment_status

import (
	"net/http"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
)

const msgMissingStatus = "не указан новый статус"

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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseAppointmentID(r)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	if req.Status == "" {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing status: id=%s", id)
		handlers.RespondBadRequest(w, msgMissingStatus)
		return
	}

	caller := middleware.CallerFromContext(r.Context())

	result, err := h.service.UpdateStatus(r.Context(), id, &models.UpdateStatusRequest{
		Caller: caller,
		Status: req.Status,
	})
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: id=%s, error=%v", id, err)
		} else {
			h.logger.Warn("PATCH /appointments/{id}/status - Rejected: id=%s, target=%s, status=%d, error=%v",
				id, req.Status, status, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: id=%s, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
