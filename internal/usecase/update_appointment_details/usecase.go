package update_appointment_details

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-TireBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-TireBooking/internal/policy"
)

// UseCase use case изменения данных записи администратором
type UseCase struct {
	appointmentRepo AppointmentRepository
	capacity        CapacityChecker
	txManager       TransactionManager
	hours           domain.BusinessHours
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	capacity CapacityChecker,
	txManager TransactionManager,
	hours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		capacity:        capacity,
		txManager:       txManager,
		hours:           hours,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute меняет имя, email, марку автомобиля, дату или время записи
// Только администратор и только для записи в статусе pending.
// При переносе повторно проверяются календарь и вместимость целевого слота без учета самой записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	uc.logger.Info("UpdateAppointmentDetails: caller=%s, id=%s", req.Caller.Role, req.ID)

	// 1. Менять поля может только администратор
	if !req.Caller.IsAdmin() {
		uc.logger.Warn("UpdateAppointmentDetails: caller %s (%s) is not admin", req.Caller.Email, req.Caller.Role)
		return nil, ErrForbidden
	}

	// 2. Валидация изменений
	normalizeChanges(&req.Changes)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointmentDetails: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3. Текущая запись
		current, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: id=%s", ErrNotFound, req.ID)
			}
			uc.logger.Error("UpdateAppointmentDetails: failed to get appointment id=%s: %v", req.ID, err)
			return fmt.Errorf("%w: get appointment: %v", ErrStoreUnavailable, err)
		}

		// 4. Права и статус
		if err := policy.AuthorizeEdit(req.Caller, current); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return fmt.Errorf("%w: %v", ErrForbidden, err)
			}
			return fmt.Errorf("%w: id=%s status=%s", ErrNotPending, current.ID, current.Status)
		}

		updated := req.Changes.Apply(*current)

		// 5. Перенос: календарь, дата и вместимость целевого слота
		if req.Changes.MovesSlot(current) {
			if err := uc.checkTargetSlot(txCtx, &updated); err != nil {
				return err
			}
		}

		// 6. Сохранение (только пока запись в статусе pending)
		saved, err := uc.appointmentRepo.UpdateDetails(txCtx, &updated)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return fmt.Errorf("%w: id=%s", ErrNotFound, req.ID)
			case errors.Is(err, appointmentRepo.ErrStatusConflict):
				return fmt.Errorf("%w: id=%s changed concurrently", ErrNotPending, req.ID)
			default:
				uc.logger.Error("UpdateAppointmentDetails: failed to update appointment id=%s: %v", req.ID, err)
				return fmt.Errorf("%w: update appointment: %v", ErrStoreUnavailable, err)
			}
		}

		result = saved
		return nil
	})

	if err != nil {
		if isTaxonomyError(err) {
			uc.logger.Warn("UpdateAppointmentDetails: rejected id=%s: %v", req.ID, err)
			return nil, err
		}
		uc.logger.Error("UpdateAppointmentDetails: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Info("UpdateAppointmentDetails: successfully updated appointment id=%s, slot %s", result.ID, result.Slot().Key())

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

// checkTargetSlot проверяет слот, в который переносится запись
func (uc *UseCase) checkTargetSlot(ctx context.Context, updated *domain.Appointment) error {
	slot := updated.Slot()

	if domain.IsDateInPast(slot.Date, uc.timeProvider.Now()) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, slot.Date.Format(domain.DateFormat))
	}

	if !uc.hours.IsBookable(slot.Date, slot.Time) {
		return fmt.Errorf("%w: %s", ErrSlotClosed, slot.Key())
	}

	if err := uc.appointmentRepo.LockSlot(ctx, slot); err != nil {
		uc.logger.Error("UpdateAppointmentDetails: failed to lock slot %s: %v", slot.Key(), err)
		return fmt.Errorf("%w: lock slot: %v", ErrStoreUnavailable, err)
	}

	remaining, err := uc.capacity.RemainingCapacityExcluding(ctx, slot.Date, slot.Time, updated.ID)
	if err != nil {
		uc.logger.Error("UpdateAppointmentDetails: failed to count slot %s: %v", slot.Key(), err)
		return fmt.Errorf("%w: count slot: %v", ErrStoreUnavailable, err)
	}
	if remaining == 0 {
		return fmt.Errorf("%w: %s", ErrSlotFull, slot.Key())
	}

	return nil
}

// isTaxonomyError true для ошибок, уже приведенных к доменной таксономии
func isTaxonomyError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrForbidden,
		domain.ErrNotFound,
		domain.ErrInvalidTransition,
		domain.ErrSlotClosed,
		domain.ErrSlotFull,
		domain.ErrStoreUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
