package capacity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// AppointmentCounter источник количества активных записей
type AppointmentCounter interface {
	CountActiveInSlot(ctx context.Context, slot domain.Slot, excludeID *uuid.UUID) (int, error)
	CountActiveByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error)
}
