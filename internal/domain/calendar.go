package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

// anchorHour час, к которому привязывается календарная дата
// Полдень защищает день недели от сдвига часового пояса на границе суток
const anchorHour = 12

// BusinessHours рабочие часы шиномонтажа
// Слоты идут с OpeningHour (включительно) до ClosingHour (не включительно) с шагом в час
type BusinessHours struct {
	OpeningHour int
	ClosingHour int
}

// DefaultBusinessHours 08:00-16:00, понедельник-пятница
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		OpeningHour: DefaultOpeningHour,
		ClosingHour: DefaultClosingHour,
	}
}

// Validate проверяет корректность рабочих часов
func (h BusinessHours) Validate() error {
	if h.OpeningHour < 0 || h.ClosingHour > 24 || h.OpeningHour >= h.ClosingHour {
		return fmt.Errorf("%w: invalid business hours %02d:00-%02d:00", ErrValidation, h.OpeningHour, h.ClosingHour)
	}
	return nil
}

// Slots упорядоченный список слотов дня: 08:00, 09:00, ..., 15:00
func (h BusinessHours) Slots() []types.TimeString {
	slots := make([]types.TimeString, 0, h.ClosingHour-h.OpeningHour)
	for hour := h.OpeningHour; hour < h.ClosingHour; hour++ {
		slots = append(slots, types.FromHour(hour))
	}
	return slots
}

// IsBusinessDay true для понедельника-пятницы
func (h BusinessHours) IsBusinessDay(date time.Time) bool {
	weekday := NormalizeDate(date).Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}

// IsBusinessHour true, если время является слотом рабочего дня
func (h BusinessHours) IsBusinessHour(t types.TimeString) bool {
	if !t.IsWholeHour() {
		return false
	}
	hour := t.Hour()
	return hour >= h.OpeningHour && hour < h.ClosingHour
}

// IsBookable true, если (дата, время) является слотом для записи
func (h BusinessHours) IsBookable(date time.Time, t types.TimeString) bool {
	return h.IsBusinessDay(date) && h.IsBusinessHour(t)
}

// ParseDate парсит "YYYY-MM-DD" и привязывает дату к полудню UTC
func ParseDate(s string) (time.Time, error) {
	parsed, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return NormalizeDate(parsed), nil
}

// NormalizeDate отбрасывает время и часовой пояс, оставляя календарную дату в полдень UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, anchorHour, 0, 0, 0, time.UTC)
}

// SameDate true, если обе метки относятся к одной календарной дате
func SameDate(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// IsDateInPast true, если дата раньше сегодняшней даты now
func IsDateInPast(date, now time.Time) bool {
	return NormalizeDate(date).Before(NormalizeDate(now))
}
