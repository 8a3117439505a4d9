package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается, если строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeLayout = "15:04"

// TimeString время суток в формате "HH:MM" без даты
type TimeString string

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromHour создает TimeString для начала часа ("09:00")
func FromHour(hour int) TimeString {
	return TimeString(fmt.Sprintf("%02d:00", hour))
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Hour возвращает час (0-23), -1 при некорректном формате
func (t TimeString) Hour() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()
}

// Minute возвращает минуты (0-59), -1 при некорректном формате
func (t TimeString) Minute() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Minute()
}

// IsWholeHour true, если время приходится на начало часа
func (t TimeString) IsWholeHour() bool {
	return t.Validate() == nil && t.Minute() == 0
}

// minutes количество минут от начала суток
func (t TimeString) minutes() int {
	return t.Hour()*60 + t.Minute()
}

// IsBefore true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes() < other.minutes()
}
