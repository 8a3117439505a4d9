package list_appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-TireBooking/pkg/logger"
	"github.com/m04kA/SMC-TireBooking/pkg/metrics"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

var (
	admin = domain.Caller{UserID: "u-admin", Email: "boss@garage.test", Role: domain.RoleAdmin}
	jean  = domain.Caller{UserID: "u-jean", Email: "jean@example.com", Role: domain.RoleClient}

	monday  = domain.NormalizeDate(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))
	tuesday = domain.NormalizeDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
)

func setup(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore()
	seed := func(email string, date time.Time, slotTime types.TimeString) {
		_, err := store.Create(context.Background(), &domain.Appointment{
			ID:          uuid.New(),
			ClientName:  "Client",
			ClientEmail: email,
			CarBrand:    "Toyota",
			Date:        date,
			Time:        slotTime,
			Status:      domain.StatusPending,
		}, domain.MaxSlotCapacity)
		require.NoError(t, err)
	}
	seed("jean@example.com", tuesday, "09:00")
	seed("marie@example.com", monday, "11:00")
	seed("JEAN@example.com", monday, "08:00")

	svc := appointments.NewService(store, metrics.New("test", prometheus.NewRegistry()), logger.NewNop())
	return NewHandler(svc, logger.NewNop())
}

func list(t *testing.T, h *Handler, caller domain.Caller, query string) (int, models.AppointmentListResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments"+query, nil)
	req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var resp models.AppointmentListResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func TestHandler_Visibility(t *testing.T) {
	h := setup(t)

	code, resp := list(t, h, domain.Anonymous(), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Appointments)

	code, resp = list(t, h, jean, "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "2025-06-09", resp.Appointments[0].Date)
	assert.Equal(t, "2025-06-10", resp.Appointments[1].Date)

	code, resp = list(t, h, admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, resp.Total)
}

func TestHandler_Filters(t *testing.T) {
	h := setup(t)

	code, resp := list(t, h, admin, "?date=2025-06-09")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "08:00", resp.Appointments[0].Time)
	assert.Equal(t, "11:00", resp.Appointments[1].Time)

	code, resp = list(t, h, admin, "?status=completed")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Total)

	code, _ = list(t, h, admin, "?date=June")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = list(t, h, admin, "?status=archived")
	assert.Equal(t, http.StatusBadRequest, code)
}
