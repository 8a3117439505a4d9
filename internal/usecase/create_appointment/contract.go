package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockSlot(ctx context.Context, slot domain.Slot) error
	Create(ctx context.Context, appt *domain.Appointment, capacity int) (*domain.Appointment, error)
}

// CapacityChecker интерфейс проверки вместимости слотов
type CapacityChecker interface {
	RemainingCapacity(ctx context.Context, date time.Time, t types.TimeString) (int, error)
	Limit() int
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс бизнес-метрик
type MetricsRecorder interface {
	AppointmentCreated()
	BookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
