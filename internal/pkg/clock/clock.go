package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedTime is returned when a time-of-day string is not "HH:MM".
var ErrMalformedTime = errors.New("malformed time of day, expected HH:MM")

const DayFormat = "2006-01-02"

// DayKeyOf truncates an instant to its calendar date in loc. Two instants
// within the same wall-clock day collide to the same key, which is what makes
// the (employee, day) record identity work.
func DayKeyOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the half-open range [start, end) covering the whole
// calendar day, for range queries against instant-typed columns.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a "YYYY-MM-DD" string into a day key in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseTimeOfDay parses an "HH:MM" string. Callers that want the fail-open
// behaviour (late policy) handle ErrMalformedTime themselves; everyone else
// surfaces it.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, ErrMalformedTime
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, ErrMalformedTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrMalformedTime
	}
	return hour, minute, nil
}

// At places a time-of-day onto a day key.
func At(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// FormatTimeOfDay renders an instant as "HH:MM" in its own location.
func FormatTimeOfDay(t time.Time) string {
	return t.Format("15:04")
}

// WorkingHours derives the "XhYYm" working-hours string from a check-in and
// check-out pair. A missing bound or a negative span renders as "0h00m";
// durations are never negative.
func WorkingHours(checkIn, checkOut *time.Time) string {
	if checkIn == nil || checkOut == nil {
		return "0h00m"
	}
	d := checkOut.Sub(*checkIn)
	if d < 0 {
		return "0h00m"
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}
