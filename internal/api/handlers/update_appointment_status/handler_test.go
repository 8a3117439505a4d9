package update_appointment_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TireBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-TireBooking/pkg/logger"
	"github.com/m04kA/SMC-TireBooking/pkg/metrics"
)

var (
	admin = domain.Caller{UserID: "u-admin", Email: "boss@garage.test", Role: domain.RoleAdmin}
	jean  = domain.Caller{UserID: "u-jean", Email: "jean@example.com", Role: domain.RoleClient}
	marie = domain.Caller{UserID: "u-marie", Email: "marie@example.com", Role: domain.RoleClient}
)

func setup(t *testing.T) (*Handler, *domain.Appointment) {
	t.Helper()
	store := memory.NewStore()
	appt, err := store.Create(context.Background(), &domain.Appointment{
		ID:          uuid.New(),
		ClientName:  "Jean",
		ClientEmail: "jean@example.com",
		CarBrand:    "Renault",
		Date:        domain.NormalizeDate(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)),
		Time:        "09:00",
		Status:      domain.StatusPending,
	}, domain.MaxSlotCapacity)
	require.NoError(t, err)

	svc := appointments.NewService(store, metrics.New("test", prometheus.NewRegistry()), logger.NewNop())
	return NewHandler(svc, logger.NewNop()), appt
}

func patch(h *Handler, caller domain.Caller, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{handlers.AppointmentIDVar: id})
	req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_AdminCompletes(t *testing.T) {
	h, appt := setup(t)

	rec := patch(h, admin, appt.ID.String(), `{"status":"completed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)

	// терминальный статус
	assert.Equal(t, http.StatusConflict, patch(h, admin, appt.ID.String(), `{"status":"cancelled"}`).Code)
}

func TestHandler_OwnerCancels(t *testing.T) {
	h, appt := setup(t)

	assert.Equal(t, http.StatusForbidden, patch(h, jean, appt.ID.String(), `{"status":"completed"}`).Code)
	assert.Equal(t, http.StatusForbidden, patch(h, marie, appt.ID.String(), `{"status":"cancelled"}`).Code)
	assert.Equal(t, http.StatusOK, patch(h, jean, appt.ID.String(), `{"status":"cancelled"}`).Code)
}

func TestHandler_BadRequests(t *testing.T) {
	h, appt := setup(t)

	assert.Equal(t, http.StatusBadRequest, patch(h, admin, "42", `{"status":"completed"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(h, admin, appt.ID.String(), `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(h, admin, appt.ID.String(), `{"status":"archived"}`).Code)
	assert.Equal(t, http.StatusNotFound, patch(h, admin, uuid.NewString(), `{"status":"completed"}`).Code)
}
