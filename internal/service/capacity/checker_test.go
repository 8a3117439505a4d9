package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

var monday = domain.NormalizeDate(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))

func seed(t *testing.T, store *memory.Store, slotTime types.TimeString, n int) []*domain.Appointment {
	t.Helper()
	created := make([]*domain.Appointment, 0, n)
	for i := 0; i < n; i++ {
		appt, err := store.Create(context.Background(), &domain.Appointment{
			ID:          uuid.New(),
			ClientName:  "Client",
			ClientEmail: "client@example.com",
			CarBrand:    "Peugeot",
			Date:        monday,
			Time:        slotTime,
			Status:      domain.StatusPending,
		}, domain.MaxSlotCapacity)
		require.NoError(t, err)
		created = append(created, appt)
	}
	return created
}

func TestChecker_RemainingCapacity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	checker := NewChecker(store)

	remaining, err := checker.RemainingCapacity(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	seed(t, store, "09:00", 2)

	remaining, err = checker.RemainingCapacity(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	ok, err := checker.HasCapacity(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.True(t, ok)

	seed(t, store, "09:00", 1)

	ok, err = checker.HasCapacity(ctx, monday, "09:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_CancelledFreesCapacity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	checker := NewChecker(store)

	appts := seed(t, store, "10:00", 3)
	_, err := store.UpdateStatus(ctx, appts[0].ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	remaining, err := checker.RemainingCapacity(ctx, monday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestChecker_RemainingCapacityExcluding(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	checker := NewChecker(store)

	appts := seed(t, store, "11:00", 3)

	remaining, err := checker.RemainingCapacityExcluding(ctx, monday, "11:00", appts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestChecker_SlotStatus(t *testing.T) {
	checker := NewChecker(memory.NewStore())

	assert.Equal(t, domain.SlotClosed, checker.SlotStatus(false, 0))
	assert.Equal(t, domain.SlotAvailable, checker.SlotStatus(true, 2))
	assert.Equal(t, domain.SlotFull, checker.SlotStatus(true, 3))
	assert.Equal(t, domain.SlotFull, checker.SlotStatus(true, 4))
	assert.True(t, checker.IsOverbooked(4))
	assert.False(t, checker.IsOverbooked(3))
}

type failingCounter struct{}

func (failingCounter) CountActiveInSlot(context.Context, domain.Slot, *uuid.UUID) (int, error) {
	return 0, errors.New("connection refused")
}

func (failingCounter) CountActiveByDate(context.Context, time.Time) (map[types.TimeString]int, error) {
	return nil, errors.New("connection refused")
}

func TestChecker_StoreFailure(t *testing.T) {
	checker := NewChecker(failingCounter{})

	_, err := checker.RemainingCapacity(context.Background(), monday, "09:00")
	assert.ErrorIs(t, err, ErrCountFailed)

	_, err = checker.BookedByDate(context.Background(), monday)
	assert.ErrorIs(t, err, ErrCountFailed)
}
