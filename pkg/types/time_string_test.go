package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "slot", input: "09:00"},
		{name: "half hour", input: "09:30"},
		{name: "midnight", input: "00:00"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "seconds", input: "09:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_HourMinute(t *testing.T) {
	ts := TimeString("15:45")
	assert.Equal(t, 15, ts.Hour())
	assert.Equal(t, 45, ts.Minute())
	assert.False(t, ts.IsWholeHour())
	assert.True(t, FromHour(8).IsWholeHour())
	assert.Equal(t, -1, TimeString("bad").Hour())
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestFromHour(t *testing.T) {
	assert.Equal(t, TimeString("07:00"), FromHour(7))
	assert.Equal(t, TimeString("15:00"), FromHour(15))
}
