package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-TireBooking/internal/usecase/get_availability"
)

const msgMissingDate = "не указана дата (параметр date)"

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", rawDate, err)
		} else {
			h.logger.Warn("GET /availability - Rejected: date=%s, error=%v", rawDate, err)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: date=%s, slots=%d", rawDate, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
