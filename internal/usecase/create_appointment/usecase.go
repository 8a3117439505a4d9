package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-TireBooking/internal/infra/storage/appointment"
)

// UseCase use case для создания записи на шиномонтаж
type UseCase struct {
	appointmentRepo AppointmentRepository
	capacity        CapacityChecker
	txManager       TransactionManager
	hours           domain.BusinessHours
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	capacity CapacityChecker,
	txManager TransactionManager,
	hours domain.BusinessHours,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		capacity:        capacity,
		txManager:       txManager,
		hours:           hours,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Проверка вместимости повторяется внутри транзакции под блокировкой слота,
// а вставка выполняется условно: при заполненном слоте запись не создается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	// 1. Нормализация и валидация входных данных
	normalizeRequest(req)
	req.Date = domain.NormalizeDate(req.Date)

	uc.logger.Info("CreateAppointment: caller=%s, date=%s, time=%s",
		req.Caller.Role, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.metrics.BookingRejected(reasonValidation)
		return nil, err
	}

	// 2. Клиент может записать только себя
	if err := validateCaller(req.Caller, req.ClientEmail); err != nil {
		uc.logger.Warn("CreateAppointment: caller user=%s tried to book for another client", req.Caller.UserID)
		uc.metrics.BookingRejected(reasonForbidden)
		return nil, err
	}

	// 3. Дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		uc.metrics.BookingRejected(reasonValidation)
		return nil, err
	}

	// 4. Правила календаря
	if !uc.hours.IsBookable(req.Date, req.Time) {
		uc.logger.Warn("CreateAppointment: slot %sT%s is closed", req.Date.Format(domain.DateFormat), req.Time)
		uc.metrics.BookingRejected(reasonClosed)
		return nil, fmt.Errorf("%w: %s %s", ErrSlotClosed, req.Date.Format(domain.DateFormat), req.Time)
	}

	appt := &domain.Appointment{
		ID:          uuid.New(),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		CarBrand:    req.CarBrand,
		Date:        req.Date,
		Time:        req.Time,
		Status:      domain.StatusPending,
	}
	slot := appt.Slot()

	var result *domain.Appointment

	// 5. Блокировка слота, повторный подсчет и условная вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.LockSlot(txCtx, slot); err != nil {
			uc.logger.Error("CreateAppointment: failed to lock slot %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: lock slot: %v", ErrStoreUnavailable, err)
		}

		remaining, err := uc.capacity.RemainingCapacity(txCtx, slot.Date, slot.Time)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count slot %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: count slot: %v", ErrStoreUnavailable, err)
		}
		if remaining == 0 {
			return fmt.Errorf("%w: %s", ErrSlotFull, slot.Key())
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt, uc.capacity.Limit())
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				return fmt.Errorf("%w: %s", ErrSlotFull, slot.Key())
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: create appointment: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotFull):
			uc.logger.Warn("CreateAppointment: slot %s is full", slot.Key())
			uc.metrics.BookingRejected(reasonFull)
			return nil, err
		case errors.Is(err, domain.ErrStoreUnavailable):
			uc.metrics.BookingRejected(reasonStore)
			return nil, err
		default:
			// ошибки начала или фиксации транзакции
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			uc.metrics.BookingRejected(reasonStore)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	uc.metrics.AppointmentCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s in slot %s", result.ID, slot.Key())

	return &Response{
		ID:          result.ID,
		ClientName:  result.ClientName,
		ClientEmail: result.ClientEmail,
		CarBrand:    result.CarBrand,
		Date:        result.Date,
		Time:        result.Time,
		Status:      result.Status,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
