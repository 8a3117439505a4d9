package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// CapacityChecker интерфейс проверки вместимости слотов
type CapacityChecker interface {
	BookedByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error)
	SlotStatus(bookable bool, booked int) domain.SlotStatus
	IsOverbooked(booked int) bool
	Limit() int
}

// MetricsRecorder интерфейс бизнес-метрик
type MetricsRecorder interface {
	SlotOverbooked()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
