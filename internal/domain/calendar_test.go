package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

func TestBusinessHours_Slots(t *testing.T) {
	slots := DefaultBusinessHours().Slots()

	require.Len(t, slots, 8)
	assert.Equal(t, types.TimeString("08:00"), slots[0])
	assert.Equal(t, types.TimeString("15:00"), slots[len(slots)-1])
}

func TestBusinessHours_IsBookable(t *testing.T) {
	hours := DefaultBusinessHours()
	monday := mustDate(t, "2025-06-09")
	saturday := mustDate(t, "2025-06-07")
	sunday := mustDate(t, "2025-06-08")

	tests := []struct {
		name string
		date time.Time
		time types.TimeString
		want bool
	}{
		{name: "monday opening", date: monday, time: "08:00", want: true},
		{name: "monday last slot", date: monday, time: "15:00", want: true},
		{name: "monday closing hour", date: monday, time: "16:00", want: false},
		{name: "monday before opening", date: monday, time: "07:00", want: false},
		{name: "monday half hour", date: monday, time: "09:30", want: false},
		{name: "malformed time", date: monday, time: "9h", want: false},
		{name: "saturday", date: saturday, time: "10:00", want: false},
		{name: "sunday", date: sunday, time: "10:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hours.IsBookable(tt.date, tt.time))
		})
	}
}

func TestBusinessHours_WeekendAlwaysClosed(t *testing.T) {
	hours := DefaultBusinessHours()
	weekend := []string{"2025-06-07", "2025-06-08", "2025-06-14", "2025-06-15", "2026-01-03"}

	for _, d := range weekend {
		date := mustDate(t, d)
		for _, slot := range hours.Slots() {
			assert.False(t, hours.IsBookable(date, slot), "%s %s must be closed", d, slot)
		}
	}
}

func TestNormalizeDate_TimezoneBoundary(t *testing.T) {
	// 23:30 в Монреале в пятницу - это уже суббота в UTC
	montreal := time.FixedZone("EDT", -4*3600)
	friday := time.Date(2025, 6, 6, 23, 30, 0, 0, montreal)

	assert.Equal(t, time.Friday, NormalizeDate(friday).Weekday())
	assert.True(t, DefaultBusinessHours().IsBusinessDay(friday))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-06-09")
	require.NoError(t, err)
	assert.Equal(t, 12, date.Hour())
	assert.Equal(t, time.Monday, date.Weekday())

	_, err = ParseDate("09/06/2025")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBusinessHours_Validate(t *testing.T) {
	assert.NoError(t, DefaultBusinessHours().Validate())
	assert.Error(t, BusinessHours{OpeningHour: 16, ClosingHour: 8}.Validate())
	assert.Error(t, BusinessHours{OpeningHour: 8, ClosingHour: 25}.Validate())
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)
	assert.True(t, IsDateInPast(mustDate(t, "2025-06-08"), now))
	assert.False(t, IsDateInPast(mustDate(t, "2025-06-09"), now))
	assert.False(t, IsDateInPast(mustDate(t, "2025-06-10"), now))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := ParseDate(s)
	require.NoError(t, err)
	return date
}
