package list_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
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

// Handle GET /api/v1/appointments?date=YYYY-MM-DD&status=pending
// Анонимный посетитель получает пустой список.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	query := r.URL.Query()

	req := &models.ListAppointmentsRequest{Caller: caller}

	if rawDate := query.Get("date"); rawDate != "" {
		date, err := domain.ParseDate(rawDate)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date filter: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
			return
		}
		req.Date = &date
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		req.Status = &rawStatus
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /appointments - Failed to list appointments: error=%v", err)
		} else {
			h.logger.Warn("GET /appointments - Rejected: status=%d, error=%v", status, err)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: role=%s, total=%d", caller.Role, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
