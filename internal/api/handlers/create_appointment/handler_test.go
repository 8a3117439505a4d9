package create_appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-TireBooking/internal/service/capacity"
	createAppointment "github.com/m04kA/SMC-TireBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-TireBooking/pkg/logger"
	"github.com/m04kA/SMC-TireBooking/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newHandler(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore()
	uc := createAppointment.NewUseCase(
		store,
		capacity.NewChecker(store),
		memory.NewTxManager(store),
		domain.DefaultBusinessHours(),
		metrics.New("test", prometheus.NewRegistry()),
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)})
	return NewHandler(uc, logger.NewNop())
}

func post(h *Handler, caller domain.Caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"clientName":"Jean","clientEmail":"jean@example.com","carBrand":"Renault","date":"2025-06-09","time":"09:00"}`

func TestHandler_Created(t *testing.T) {
	h := newHandler(t)

	rec := post(h, domain.Anonymous(), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2025-06-09", resp.Date)
	assert.Equal(t, "09:00", resp.Time)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandler_FourthBookingConflicts(t *testing.T) {
	h := newHandler(t)
	for i := 0; i < domain.MaxSlotCapacity; i++ {
		require.Equal(t, http.StatusCreated, post(h, domain.Anonymous(), validBody).Code)
	}

	rec := post(h, domain.Anonymous(), validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.MsgSlotFull, resp.Message)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		caller domain.Caller
		body   string
		status int
	}{
		{"malformed json", domain.Anonymous(), `{"clientName":`, http.StatusBadRequest},
		{"unknown field", domain.Anonymous(), `{"foo":"bar"}`, http.StatusBadRequest},
		{"bad date", domain.Anonymous(), strings.Replace(validBody, "2025-06-09", "09/06/2025", 1), http.StatusBadRequest},
		{"bad time", domain.Anonymous(), strings.Replace(validBody, `"09:00"`, `"9h"`, 1), http.StatusBadRequest},
		{"missing name", domain.Anonymous(), strings.Replace(validBody, `"Jean"`, `""`, 1), http.StatusBadRequest},
		{"saturday", domain.Anonymous(), strings.Replace(validBody, "2025-06-09", "2025-06-07", 1), http.StatusUnprocessableEntity},
		{"after closing", domain.Anonymous(), strings.Replace(validBody, `"09:00"`, `"16:00"`, 1), http.StatusUnprocessableEntity},
		{
			"client books for someone else",
			domain.Caller{UserID: "u-marie", Email: "marie@example.com", Role: domain.RoleClient},
			validBody,
			http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newHandler(t), tt.caller, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
