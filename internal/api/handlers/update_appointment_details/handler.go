package update_appointment_details

import (
	"net/http"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

type Handler struct {
	useCase UpdateDetailsUseCase
	logger  Logger
}

func NewHandler(useCase UpdateDetailsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseAppointmentID(r)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidID)
		return
	}

	var req UpdateDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	caller := middleware.CallerFromContext(r.Context())

	useCaseReq, msg, err := req.ToUseCaseRequest(caller, id)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msg)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: id=%s, error=%v", id, err)
		} else {
			h.logger.Warn("PATCH /appointments/{id} - Rejected: id=%s, status=%d, error=%v", id, status, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: id=%s, slot=%s %s",
		id, result.Date.Format(domain.DateFormat), result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
