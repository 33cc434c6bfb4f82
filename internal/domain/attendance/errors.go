package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoCheckIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAggregateNotFound = errors.New("daily aggregate not found")
	ErrUnauthorized      = errors.New("unauthorized to access this attendance record")

	// ErrStorageUnavailable marks transient store failures. The aggregate
	// delta step retries these before surfacing, because a dropped increment
	// silently corrupts the daily counts.
	ErrStorageUnavailable = errors.New("attendance storage unavailable")
)
