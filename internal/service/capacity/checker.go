package capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// Checker проверяет вместимость слотов
// Вместимость фиксирована: domain.MaxSlotCapacity активных записей на слот.
type Checker struct {
	counter AppointmentCounter
	limit   int
}

// NewChecker создает проверку вместимости поверх counter
func NewChecker(counter AppointmentCounter) *Checker {
	return &Checker{counter: counter, limit: domain.MaxSlotCapacity}
}

// Limit максимальное количество активных записей в слоте
func (c *Checker) Limit() int {
	return c.limit
}

// RemainingCapacity свободные места в слоте (не меньше 0)
func (c *Checker) RemainingCapacity(ctx context.Context, date time.Time, t types.TimeString) (int, error) {
	return c.remaining(ctx, domain.Slot{Date: domain.NormalizeDate(date), Time: t}, nil)
}

// RemainingCapacityExcluding свободные места без учета записи excludeID
// Используется при переносе записи: сама запись не занимает место в целевом слоте.
func (c *Checker) RemainingCapacityExcluding(ctx context.Context, date time.Time, t types.TimeString, excludeID uuid.UUID) (int, error) {
	return c.remaining(ctx, domain.Slot{Date: domain.NormalizeDate(date), Time: t}, &excludeID)
}

// HasCapacity true, если в слоте есть хотя бы одно место
func (c *Checker) HasCapacity(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	remaining, err := c.RemainingCapacity(ctx, date, t)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

// BookedByDate активные записи на дату по слотам за одно чтение
func (c *Checker) BookedByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	counts, err := c.counter.CountActiveByDate(ctx, domain.NormalizeDate(date))
	if err != nil {
		return nil, fmt.Errorf("%w: BookedByDate - date %s: %w", ErrCountFailed, date.Format(domain.DateFormat), err)
	}
	return counts, nil
}

// SlotStatus статус слота по правилам календаря и количеству записей
func (c *Checker) SlotStatus(bookable bool, booked int) domain.SlotStatus {
	return domain.ComputeSlotStatus(bookable, booked)
}

// IsOverbooked true, если в слоте больше записей, чем допускает лимит
func (c *Checker) IsOverbooked(booked int) bool {
	return booked > c.limit
}

func (c *Checker) remaining(ctx context.Context, slot domain.Slot, excludeID *uuid.UUID) (int, error) {
	count, err := c.counter.CountActiveInSlot(ctx, slot, excludeID)
	if err != nil {
		return 0, fmt.Errorf("%w: slot %s: %w", ErrCountFailed, slot.Key(), err)
	}
	if count >= c.limit {
		return 0, nil
	}
	return c.limit - count, nil
}
