package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointments: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на запись
	ErrAccessDenied = fmt.Errorf("appointments: %w", domain.ErrForbidden)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("appointments: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("appointments: %w", domain.ErrValidation)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("appointments: %w", domain.ErrStoreUnavailable)
)
