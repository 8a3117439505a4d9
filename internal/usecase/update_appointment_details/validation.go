package update_appointment_details

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
	"github.com/m04kA/SMC-TireBooking/pkg/ptr"
)

// normalizeChanges обрезает пробелы в строковых полях
func normalizeChanges(changes *domain.AppointmentChanges) {
	if changes.ClientName != nil {
		changes.ClientName = ptr.Ptr(strings.TrimSpace(*changes.ClientName))
	}
	if changes.ClientEmail != nil {
		changes.ClientEmail = ptr.Ptr(domain.NormalizeEmail(*changes.ClientEmail))
	}
	if changes.CarBrand != nil {
		changes.CarBrand = ptr.Ptr(strings.TrimSpace(*changes.CarBrand))
	}
	if changes.Date != nil {
		changes.Date = ptr.Ptr(domain.NormalizeDate(*changes.Date))
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	changes := req.Changes
	if changes.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if changes.ClientName != nil {
		if *changes.ClientName == "" {
			return fmt.Errorf("%w: client name must not be empty", ErrInvalidInput)
		}
		if utf8.RuneCountInString(*changes.ClientName) > domain.MaxClientNameLength {
			return fmt.Errorf("%w: client name is longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
		}
	}

	if changes.ClientEmail != nil {
		email := *changes.ClientEmail
		if len(email) > domain.MaxClientEmailLength {
			return fmt.Errorf("%w: client email is longer than %d characters", ErrInvalidInput, domain.MaxClientEmailLength)
		}
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			return fmt.Errorf("%w: invalid client email %q", ErrInvalidInput, email)
		}
	}

	if changes.CarBrand != nil {
		if *changes.CarBrand == "" {
			return fmt.Errorf("%w: car brand must not be empty", ErrInvalidInput)
		}
		if utf8.RuneCountInString(*changes.CarBrand) > domain.MaxCarBrandLength {
			return fmt.Errorf("%w: car brand is longer than %d characters", ErrInvalidInput, domain.MaxCarBrandLength)
		}
	}

	if changes.Date != nil && changes.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}

	if changes.Time != nil {
		if err := changes.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
