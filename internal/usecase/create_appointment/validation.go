package create_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

// normalizeRequest обрезает пробелы и приводит email к нижнему регистру
func normalizeRequest(req *Request) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = domain.NormalizeEmail(req.ClientEmail)
	req.CarBrand = strings.TrimSpace(req.CarBrand)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.ClientEmail == "" {
		return fmt.Errorf("%w: client email is required", ErrInvalidInput)
	}
	if len(req.ClientEmail) > domain.MaxClientEmailLength {
		return fmt.Errorf("%w: client email is longer than %d characters", ErrInvalidInput, domain.MaxClientEmailLength)
	}
	if err := validateEmail(req.ClientEmail); err != nil {
		return err
	}

	if req.CarBrand == "" {
		return fmt.Errorf("%w: car brand is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CarBrand) > domain.MaxCarBrandLength {
		return fmt.Errorf("%w: car brand is longer than %d characters", ErrInvalidInput, domain.MaxCarBrandLength)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано и имеет формат HH:MM
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateEmail проверяет, что строка является одиночным адресом без имени
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid client email %q", ErrInvalidInput, email)
	}
	return nil
}

// validateCaller проверяет, что клиент записывает себя
// Администратор записывает кого угодно, анонимный посетитель указывает свои контакты сам.
func validateCaller(caller domain.Caller, email string) error {
	if caller.IsAdmin() || caller.IsAnonymous() {
		return nil
	}
	if caller.Email == "" || domain.NormalizeEmail(caller.Email) != domain.NormalizeEmail(email) {
		return ErrForeignEmail
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}
	return nil
}
