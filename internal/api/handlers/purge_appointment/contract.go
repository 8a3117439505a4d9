package purge_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

type AppointmentService interface {
	Purge(ctx context.Context, caller domain.Caller, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
