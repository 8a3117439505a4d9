package update_appointment_details

import (
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных изменениях
	ErrInvalidInput = fmt.Errorf("update_appointment_details: %w", domain.ErrValidation)

	// ErrForbidden возвращается, когда вызывающий не администратор
	ErrForbidden = fmt.Errorf("update_appointment_details: %w", domain.ErrForbidden)

	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = fmt.Errorf("update_appointment_details: %w", domain.ErrNotFound)

	// ErrNotPending возвращается, когда запись уже завершена или отменена
	ErrNotPending = fmt.Errorf("update_appointment_details: appointment is not pending: %w", domain.ErrInvalidTransition)

	// ErrSlotClosed возвращается при переносе на нерабочее время
	ErrSlotClosed = fmt.Errorf("update_appointment_details: %w", domain.ErrSlotClosed)

	// ErrSlotFull возвращается при переносе в заполненный слот
	ErrSlotFull = fmt.Errorf("update_appointment_details: %w", domain.ErrSlotFull)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("update_appointment_details: %w", domain.ErrStoreUnavailable)
)
