package get_availability

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

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/internal/service/capacity"
	getAvailability "github.com/m04kA/SMC-TireBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-TireBooking/pkg/logger"
	"github.com/m04kA/SMC-TireBooking/pkg/metrics"
)

func newHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := getAvailability.NewUseCase(
		capacity.NewChecker(store),
		domain.DefaultBusinessHours(),
		metrics.New("test", prometheus.NewRegistry()),
		logger.NewNop(),
	)
	return NewHandler(uc, logger.NewNop()), store
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_BusinessDay(t *testing.T) {
	h, store := newHandler(t)
	monday := domain.NormalizeDate(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))
	for i := 0; i < domain.MaxSlotCapacity; i++ {
		_, err := store.Create(context.Background(), &domain.Appointment{
			ID:          uuid.New(),
			ClientName:  "Client",
			ClientEmail: "client@example.com",
			CarBrand:    "Toyota",
			Date:        monday,
			Time:        "10:00",
			Status:      domain.StatusPending,
		}, domain.MaxSlotCapacity)
		require.NoError(t, err)
	}

	rec := get(h, "/api/v1/availability?date=2025-06-09")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-09", resp.Date)
	assert.Equal(t, domain.MaxSlotCapacity, resp.Capacity)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, "08:00", resp.Slots[0].Time)
	assert.Equal(t, "available", resp.Slots[0].Status)
	assert.Equal(t, "10:00", resp.Slots[2].Time)
	assert.Equal(t, "full", resp.Slots[2].Status)
	assert.Equal(t, 0, resp.Slots[2].Remaining)
	assert.Equal(t, "15:00", resp.Slots[7].Time)
}

func TestHandler_WeekendClosed(t *testing.T) {
	h, _ := newHandler(t)

	rec := get(h, "/api/v1/availability?date=2025-06-08")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, slot := range resp.Slots {
		assert.Equal(t, "closed", slot.Status, slot.Time)
	}
}

func TestHandler_BadDate(t *testing.T) {
	h, _ := newHandler(t)

	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/availability").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/availability?date=tomorrow").Code)
}
