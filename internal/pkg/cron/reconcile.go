package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	attendanceService "github.com/chapi1234/gammoda-attendance-go/internal/service/attendance"

	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
)

// ReconcileJobs periodically re-runs the authoritative recompute over recent
// days so the daily aggregates self-heal even when no one queries them. It
// only rewrites aggregate rows; attendance records are never touched, and no
// absence rows are persisted.
type ReconcileJobs struct {
	recompute attendanceService.AggregateReconciler
	loc       *time.Location
}

func NewReconcileJobs(recompute attendanceService.AggregateReconciler, loc *time.Location) *ReconcileJobs {
	return &ReconcileJobs{recompute: recompute, loc: loc}
}

func (j *ReconcileJobs) Register(scheduler *Scheduler) {
	scheduler.Add("reconcile_daily_aggregates", 1*time.Hour, j.ReconcileRecentDays)
}

// ReconcileRecentDays recomputes today's and yesterday's aggregates.
// Yesterday is included because late events (an HR correction, a check-out
// just before midnight) can land after the day rolls over.
func (j *ReconcileJobs) ReconcileRecentDays(ctx context.Context) error {
	today := clock.DayKeyOf(time.Now(), j.loc)
	yesterday := today.AddDate(0, 0, -1)

	for _, day := range []time.Time{yesterday, today} {
		if err := j.recompute.Reconcile(ctx, day, nil); err != nil {
			return fmt.Errorf("failed to reconcile %s: %w", day.Format(clock.DayFormat), err)
		}
		slog.Debug("daily aggregate reconciled", "day", day.Format(clock.DayFormat))
	}
	return nil
}
