package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) (*domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MetricsRecorder интерфейс бизнес-метрик
type MetricsRecorder interface {
	StatusChanged(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
