package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/domain/employee"
)

// StatusChange is the classification outcome of one check-in event, the only
// input the incremental strategy needs.
type StatusChange struct {
	NewStatus       attendance.Status
	WasAbsentBefore bool
}

// AggregateReconciler brings a day's aggregate into agreement with its
// records. Both strategies implement it so call sites stay agnostic to which
// one runs: the incremental delta on the hot check-in path, the full
// recompute on HR corrections and reads. change is only meaningful to the
// incremental strategy; the recompute ignores it.
type AggregateReconciler interface {
	Reconcile(ctx context.Context, day time.Time, change *StatusChange) error
}

// deltaReconciler is the incremental strategy: ensure the day's row exists,
// then apply a single atomic increment. It never touches the absent count
// except for the -1 that reverses a previously recorded absence; all other
// absence bookkeeping belongs to the recompute, which is the only strategy
// with roster visibility.
type deltaReconciler struct {
	aggregates attendance.AggregateRepository
	maxRetries uint64
}

func NewDeltaReconciler(aggregates attendance.AggregateRepository) AggregateReconciler {
	return &deltaReconciler{aggregates: aggregates, maxRetries: 3}
}

// Reconcile implements AggregateReconciler. The record write has already
// happened when this runs, so a dropped increment is a correctness bug, not
// a cosmetic one: transient store failures are retried with bounded
// exponential backoff before the error surfaces.
func (r *deltaReconciler) Reconcile(ctx context.Context, day time.Time, change *StatusChange) error {
	if change == nil {
		return fmt.Errorf("incremental reconciliation requires a status change")
	}

	delta := deltaFor(change.NewStatus)
	if change.WasAbsentBefore {
		delta.Absent = -1
	}

	op := func() error {
		if err := r.aggregates.EnsureDay(ctx, day); err != nil {
			return err
		}
		return r.aggregates.ApplyDelta(ctx, day, delta)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		slog.Error("aggregate delta failed after retries",
			"day", day.Format("2006-01-02"),
			"status", change.NewStatus,
			"error", err)
		return fmt.Errorf("%w: aggregate increment not applied: %w", attendance.ErrStorageUnavailable, err)
	}
	return nil
}

func deltaFor(status attendance.Status) attendance.Delta {
	switch status {
	case attendance.StatusPresent:
		return attendance.Delta{Present: 1}
	case attendance.StatusLate:
		return attendance.Delta{Late: 1}
	case attendance.StatusLeave:
		return attendance.Delta{Leave: 1}
	case attendance.StatusAbsent:
		return attendance.Delta{Absent: 1}
	}
	return attendance.Delta{}
}

// recomputeReconciler is the authoritative strategy: recount the day's
// stored records, derive the absent count from the active roster size, and
// overwrite the aggregate row wholesale. More expensive, but self-correcting;
// it is the sole writer of roster-derived absence.
type recomputeReconciler struct {
	records    attendance.RecordRepository
	aggregates attendance.AggregateRepository
	roster     employee.RosterRepository
}

func NewRecomputeReconciler(
	records attendance.RecordRepository,
	aggregates attendance.AggregateRepository,
	roster employee.RosterRepository,
) AggregateReconciler {
	return &recomputeReconciler{records: records, aggregates: aggregates, roster: roster}
}

// Reconcile implements AggregateReconciler.
func (r *recomputeReconciler) Reconcile(ctx context.Context, day time.Time, _ *StatusChange) error {
	records, err := r.records.ListForDay(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list records for recompute: %w", err)
	}

	rosterSize, err := r.roster.CountActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to count active roster: %w", err)
	}

	agg := attendance.DayAggregate{Date: day}
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			agg.PresentCount++
		case attendance.StatusLate:
			agg.LateCount++
		case attendance.StatusLeave:
			agg.LeaveCount++
		}
	}

	// Stored absence records and never-recorded roster members both land in
	// the subtraction; absence has exactly one source of truth.
	agg.AbsentCount = rosterSize - (agg.PresentCount + agg.LateCount + agg.LeaveCount)
	if agg.AbsentCount < 0 {
		agg.AbsentCount = 0
	}

	if err := r.aggregates.Replace(ctx, agg); err != nil {
		return fmt.Errorf("failed to replace daily aggregate: %w", err)
	}
	return nil
}
