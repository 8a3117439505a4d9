package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

// UseCase use case получения доступности слотов на дату
type UseCase struct {
	capacity CapacityChecker
	hours    domain.BusinessHours
	metrics  MetricsRecorder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacity CapacityChecker,
	hours domain.BusinessHours,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacity: capacity,
		hours:    hours,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute возвращает статус каждого слота рабочего дня
// Выполняет одно чтение из хранилища; результат детерминирован для текущих записей.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	uc.logger.Info("GetAvailability: date=%s", date.Format(domain.DateFormat))

	booked, err := uc.capacity.BookedByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count appointments for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	slotTimes := uc.hours.Slots()
	slots := make([]Slot, 0, len(slotTimes))

	for _, slotTime := range slotTimes {
		count := booked[slotTime]
		bookable := uc.hours.IsBookable(date, slotTime)

		slot := Slot{
			Time:       slotTime,
			Status:     uc.capacity.SlotStatus(bookable, count),
			Booked:     count,
			Remaining:  0,
			Overbooked: uc.capacity.IsOverbooked(count),
		}
		if bookable {
			slot.Remaining = domain.Remaining(count)
		}

		if slot.Overbooked {
			uc.logger.Warn("GetAvailability: slot %sT%s is overbooked: %d active appointments, limit %d",
				date.Format(domain.DateFormat), slotTime, count, uc.capacity.Limit())
			uc.metrics.SlotOverbooked()
		}

		slots = append(slots, slot)
	}

	return &Response{
		Date:     date,
		Capacity: uc.capacity.Limit(),
		Slots:    slots,
	}, nil
}
