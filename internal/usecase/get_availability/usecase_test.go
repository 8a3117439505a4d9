package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/internal/service/capacity"
	"github.com/m04kA/SMC-TireBooking/pkg/logger"
	"github.com/m04kA/SMC-TireBooking/pkg/metrics"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

func newUseCase(t *testing.T) (*UseCase, *memory.Store, *metrics.Metrics) {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New("test", prometheus.NewRegistry())
	uc := NewUseCase(capacity.NewChecker(store), domain.DefaultBusinessHours(), m, logger.NewNop())
	return uc, store, m
}

func book(t *testing.T, store *memory.Store, date time.Time, slotTime types.TimeString, n, limit int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.Create(context.Background(), &domain.Appointment{
			ID:          uuid.New(),
			ClientName:  "Client",
			ClientEmail: "client@example.com",
			CarBrand:    "Volvo",
			Date:        date,
			Time:        slotTime,
			Status:      domain.StatusPending,
		}, limit)
		require.NoError(t, err)
	}
}

func TestUseCase_Execute_BusinessDay(t *testing.T) {
	uc, store, _ := newUseCase(t)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	book(t, store, monday, "09:00", 3, domain.MaxSlotCapacity)
	book(t, store, monday, "10:00", 1, domain.MaxSlotCapacity)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].Time)
	assert.Equal(t, types.TimeString("15:00"), resp.Slots[7].Time)
	assert.Equal(t, 3, resp.Capacity)

	assert.Equal(t, domain.SlotAvailable, resp.Slots[0].Status)
	assert.Equal(t, 3, resp.Slots[0].Remaining)

	assert.Equal(t, domain.SlotFull, resp.Slots[1].Status)
	assert.Equal(t, 0, resp.Slots[1].Remaining)

	assert.Equal(t, domain.SlotAvailable, resp.Slots[2].Status)
	assert.Equal(t, 1, resp.Slots[2].Booked)
	assert.Equal(t, 2, resp.Slots[2].Remaining)
}

func TestUseCase_Execute_WeekendIsClosed(t *testing.T) {
	uc, _, _ := newUseCase(t)
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{Date: saturday})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.Equal(t, domain.SlotClosed, slot.Status, slot.Time)
		assert.Zero(t, slot.Remaining)
	}
}

func TestUseCase_Execute_IsDeterministic(t *testing.T) {
	uc, store, _ := newUseCase(t)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	book(t, store, monday, "14:00", 2, domain.MaxSlotCapacity)

	first, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUseCase_Execute_ReportsOverbookedSlot(t *testing.T) {
	uc, store, m := newUseCase(t)
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	// запись в обход лимита, как при гонке без транзакции
	book(t, store, monday, "11:00", 4, 10)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	slot := resp.Slots[3]
	assert.Equal(t, types.TimeString("11:00"), slot.Time)
	assert.Equal(t, domain.SlotFull, slot.Status)
	assert.Equal(t, 4, slot.Booked)
	assert.True(t, slot.Overbooked)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OverbookedSlots.WithLabelValues("test")))
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
