package response

import (
	"errors"
	"net/http"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoCheckIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAggregateNotFound):
		NotFound(w, "No attendance data for that day")
	case errors.Is(err, attendance.ErrUnauthorized):
		Unauthorized(w, err.Error())

	// Input errors
	case errors.Is(err, clock.ErrMalformedTime):
		BadRequest(w, err.Error(), nil)

	// The record write succeeded but the aggregate increment did not, even
	// after retries; the caller may retry, the hourly recompute heals it
	// either way.
	case errors.Is(err, attendance.ErrStorageUnavailable):
		ServiceUnavailable(w, "Attendance recorded but counts are catching up, retry shortly")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
