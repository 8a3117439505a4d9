package get_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, caller domain.Caller, id uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
