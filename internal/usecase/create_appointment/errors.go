package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_appointment: %w", domain.ErrValidation)

	// ErrDateInPast возвращается при записи на прошедшую дату
	ErrDateInPast = fmt.Errorf("create_appointment: date is in the past: %w", domain.ErrValidation)

	// ErrSlotClosed возвращается, когда дата или время вне рабочего расписания
	ErrSlotClosed = fmt.Errorf("create_appointment: %w", domain.ErrSlotClosed)

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = fmt.Errorf("create_appointment: %w", domain.ErrSlotFull)

	// ErrForeignEmail возвращается, когда клиент пытается записать другого человека
	ErrForeignEmail = fmt.Errorf("create_appointment: email does not match caller: %w", domain.ErrForbidden)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("create_appointment: %w", domain.ErrStoreUnavailable)
)

// Причины отказа для метрик
const (
	reasonValidation = "validation"
	reasonForbidden  = "forbidden"
	reasonClosed     = "closed"
	reasonFull       = "full"
	reasonStore      = "store"
)
