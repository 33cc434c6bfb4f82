package attendance

import (
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest is the self-service check-in payload. Time defaults to the
// current wall clock when omitted.
type CheckInRequest struct {
	Time     *string `json:"time"` // "HH:MM"
	Location *string `json:"location"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Time != nil && !validator.IsValidTimeOfDay(*r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Time *string `json:"time"` // "HH:MM"
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Time != nil && !validator.IsValidTimeOfDay(*r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HRUpsertRequest is the HR correction payload: any subset of the record's
// fields for a given employee and day.
type HRUpsertRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`      // "YYYY-MM-DD", from the URL
	CheckIn    *string `json:"check_in"`  // "HH:MM"
	CheckOut   *string `json:"check_out"` // "HH:MM"
	Status     *string `json:"status"`
	Location   *string `json:"location"`
}

func (r *HRUpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.CheckIn != nil && !validator.IsValidTimeOfDay(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be in HH:MM format",
		})
	}

	if r.CheckOut != nil && !validator.IsValidTimeOfDay(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be in HH:MM format",
		})
	}

	if r.Status != nil && !ValidStatus(Status(*r.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, leave, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// View is the read-side projection of one employee's day. Synthesized absent
// rows (roster members with no record) use the same shape with nil times.
type View struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	WorkingHours string  `json:"working_hours"`
	Status       string  `json:"status"`
	Location     *string `json:"location,omitempty"`
}

// Counts is the public shape of a day's aggregate.
type Counts struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Leave   int `json:"leave"`
	Absent  int `json:"absent"`
}

// DayListResponse is the HR day view: every roster member plus the day's
// reconciled counts.
type DayListResponse struct {
	Date    string `json:"date"`
	Records []View `json:"records"`
	Stats   Counts `json:"stats"`
}
