package attendance

import (
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
)

// LatePolicy classifies a check-in against the process-wide work-start time.
// The work start is injected from configuration at startup, not read from the
// environment at call sites.
type LatePolicy struct {
	workStart string
}

func NewLatePolicy(workStart string) LatePolicy {
	return LatePolicy{workStart: workStart}
}

// IsLate reports whether checkIn ("HH:MM") is strictly later than the
// configured work start. Malformed input on either side classifies as not
// late: the policy fails open so a bad clock string never punishes the
// employee. That default is deliberate and covered by tests.
func (p LatePolicy) IsLate(checkIn string) bool {
	inH, inM, err := clock.ParseTimeOfDay(checkIn)
	if err != nil {
		return false
	}
	startH, startM, err := clock.ParseTimeOfDay(p.workStart)
	if err != nil {
		return false
	}
	if inH != startH {
		return inH > startH
	}
	return inM > startM
}

// Classify maps a check-in time-of-day to its status.
func (p LatePolicy) Classify(checkIn string) Status {
	if p.IsLate(checkIn) {
		return StatusLate
	}
	return StatusPresent
}
