package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireBooking/pkg/ptr"
	"github.com/m04kA/SMC-TireBooking/pkg/types"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{from: StatusPending, to: StatusCompleted, want: true},
		{from: StatusPending, to: StatusCancelled, want: true},
		{from: StatusPending, to: StatusPending, want: false},
		{from: StatusCompleted, to: StatusCancelled, want: false},
		{from: StatusCompleted, to: StatusPending, want: false},
		{from: StatusCancelled, to: StatusPending, want: false},
		{from: StatusCancelled, to: StatusCompleted, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_BelongsTo(t *testing.T) {
	a := &Appointment{ClientEmail: "Jean@Example.com "}

	assert.True(t, a.BelongsTo("jean@example.com"))
	assert.False(t, a.BelongsTo("marie@example.com"))
	assert.False(t, a.BelongsTo(""))
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	_, err = ParseStatus("confirmed")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointmentChanges(t *testing.T) {
	current := Appointment{
		ClientName: "Jean Dupont",
		Date:       mustDate(t, "2025-06-09"),
		Time:       "09:00",
	}

	assert.True(t, AppointmentChanges{}.IsEmpty())

	rename := AppointmentChanges{ClientName: ptr.Ptr("Jean-Luc Dupont")}
	assert.False(t, rename.MovesSlot(&current))
	assert.Equal(t, "Jean-Luc Dupont", rename.Apply(current).ClientName)

	sameSlot := AppointmentChanges{Date: ptr.Ptr(mustDate(t, "2025-06-09")), Time: ptr.Ptr(types.TimeString("09:00"))}
	assert.False(t, sameSlot.MovesSlot(&current))

	move := AppointmentChanges{Time: ptr.Ptr(types.TimeString("10:00"))}
	assert.True(t, move.MovesSlot(&current))
	assert.Equal(t, types.TimeString("10:00"), move.Apply(current).Time)
	assert.Equal(t, types.TimeString("09:00"), current.Time)
}

func TestComputeSlotStatus(t *testing.T) {
	assert.Equal(t, SlotClosed, ComputeSlotStatus(false, 0))
	assert.Equal(t, SlotAvailable, ComputeSlotStatus(true, 2))
	assert.Equal(t, SlotFull, ComputeSlotStatus(true, 3))
	assert.Equal(t, SlotFull, ComputeSlotStatus(true, 4))
	assert.Equal(t, 0, Remaining(4))
	assert.Equal(t, 1, Remaining(2))
}
