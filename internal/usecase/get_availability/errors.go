package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректной дате
	ErrInvalidInput = fmt.Errorf("get_availability: %w", domain.ErrValidation)

	// ErrStoreUnavailable возвращается, когда не удалось прочитать записи
	ErrStoreUnavailable = fmt.Errorf("get_availability: %w", domain.ErrStoreUnavailable)
)
