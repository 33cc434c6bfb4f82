package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyOf(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 18:30 UTC is already the next day in Jakarta (UTC+7).
	instant := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	day := DayKeyOf(instant, loc)

	assert.Equal(t, "2025-03-11", day.Format(DayFormat))
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, loc, day.Location())
}

func TestDayKeyOf_SameDayCollision(t *testing.T) {
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 21, 59, 0, 0, time.UTC)

	assert.Equal(t, DayKeyOf(morning, time.UTC), DayKeyOf(evening, time.UTC))
}

func TestDayBounds(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	start, end := DayBounds(day)

	assert.Equal(t, day, start)
	assert.Equal(t, day.AddDate(0, 0, 1), end)
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:00", 9, 0, false},
		{"23:59", 23, 59, false},
		{"00:00", 0, 0, false},
		{"9:00", 0, 0, true},
		{"09:60", 0, 0, true},
		{"24:00", 0, 0, true},
		{"09-00", 0, 0, true},
		{"", 0, 0, true},
		{"banana", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}

func TestWorkingHours(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := At(day, 9, 15)
	out := At(day, 18, 0)

	assert.Equal(t, "8h45m", WorkingHours(&in, &out))
	assert.Equal(t, "0h00m", WorkingHours(&in, nil))
	assert.Equal(t, "0h00m", WorkingHours(nil, &out))

	// Check-out before check-in never renders negative.
	assert.Equal(t, "0h00m", WorkingHours(&out, &in))

	short := At(day, 9, 20)
	assert.Equal(t, "0h05m", WorkingHours(&in, &short))
}
