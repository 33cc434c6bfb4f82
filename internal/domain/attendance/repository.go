package attendance

import (
	"context"
	"time"
)

// CheckInResult carries what the aggregation engine needs to turn a
// successful check-in into an aggregate delta: the stored record plus the
// status the day had before, if any.
type CheckInResult struct {
	Record Record

	// PreviousStatus is nil when no record existed for the day.
	PreviousStatus *Status

	// WasAbsentBefore is true when a stored record with status "absent"
	// existed for the day, meaning the day's aggregate already counted this
	// employee as absent and the delta must reverse that.
	WasAbsentBefore bool
}

// RecordPatch is the field subset an HR correction may overwrite. Nil fields
// are left untouched.
type RecordPatch struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *Status
	Location *string
}

// RecordRepository defines data access for attendance records.
type RecordRepository interface {
	// Get retrieves the record for (employeeID, day).
	// Returns ErrRecordNotFound when none exists.
	Get(ctx context.Context, employeeID string, day time.Time) (Record, error)

	// UpsertCheckIn records a check-in for (employeeID, day), creating the
	// record if needed. The operation is conditional on no check-in existing
	// yet and must be atomic for the pair: two concurrent check-ins must
	// produce exactly one record, the loser getting ErrAlreadyCheckedIn.
	UpsertCheckIn(ctx context.Context, employeeID string, day time.Time, at time.Time, status Status, location *string) (CheckInResult, error)

	// UpsertCheckOut sets the check-out time. Returns ErrNoCheckIn when no
	// check-in exists for the day and ErrAlreadyCheckedOut when the day is
	// already closed. Check-out never changes the status classification.
	UpsertCheckOut(ctx context.Context, employeeID string, day time.Time, at time.Time) (Record, error)

	// HRUpsert unconditionally overwrites the patched fields, creating the
	// record when missing. Used for corrections and manual leave entry.
	HRUpsert(ctx context.Context, employeeID string, day time.Time, patch RecordPatch) (Record, error)

	// ListForDay returns every stored record for the day.
	ListForDay(ctx context.Context, day time.Time) ([]Record, error)

	// ListForEmployee returns the employee's records, newest day first,
	// capped at limit.
	ListForEmployee(ctx context.Context, employeeID string, limit int) ([]Record, error)
}

// Delta is a single incremental adjustment to a day's counters.
type Delta struct {
	Present int
	Late    int
	Leave   int
	Absent  int
}

// AggregateRepository defines data access for daily aggregates. The store
// must provide per-day atomicity: EnsureDay is an idempotent
// create-if-absent, ApplyDelta an atomic in-place increment. Initializing and
// incrementing are deliberately separate operations; folding them into one
// write risks dropping a concurrent first event on the day.
type AggregateRepository interface {
	// Get retrieves the aggregate row for the day.
	// Returns ErrAggregateNotFound when none exists.
	Get(ctx context.Context, day time.Time) (DayAggregate, error)

	// EnsureDay creates the day's row with all-zero counts if it does not
	// exist. Safe to call concurrently; never resets an existing row.
	EnsureDay(ctx context.Context, day time.Time) error

	// ApplyDelta atomically adds d to the day's counters. The row must
	// already exist (EnsureDay first).
	ApplyDelta(ctx context.Context, day time.Time, d Delta) error

	// Replace overwrites the day's row wholesale, creating it when missing.
	// Only the full-recompute reconciliation calls this.
	Replace(ctx context.Context, agg DayAggregate) error
}
