package attendance

import (
	"time"
)

// Status classifies a day's attendance. "leave" is an HR-approved absence
// type and is only ever set through the HR upsert; "absent" means no check-in
// was recorded (either stored by HR or synthesized at read time).
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
	StatusAbsent  Status = "absent"
)

// ValidStatus reports whether s is one of the four attendance statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPresent, StatusLate, StatusLeave, StatusAbsent:
		return true
	}
	return false
}

// Record is the durable per-(employee, day) attendance ledger entry.
// At most one record exists per pair; once set, CheckIn and CheckOut only
// change through an HR correction.
type Record struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	Location   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DayAggregate is the per-day snapshot of status counts. For a fully
// reconciled day the four counts sum to the active roster size.
type DayAggregate struct {
	Date         time.Time
	PresentCount int
	LateCount    int
	LeaveCount   int
	AbsentCount  int
	UpdatedAt    time.Time
}

// Total returns the sum of all four counters.
func (a DayAggregate) Total() int {
	return a.PresentCount + a.LateCount + a.LeaveCount + a.AbsentCount
}
