package cron

import (
	"context"
	"testing"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/domain/employee"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
	"github.com/chapi1234/gammoda-attendance-go/internal/repository/memory"
	attendanceService "github.com/chapi1234/gammoda-attendance-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileRecentDays_HealsDriftedAggregate(t *testing.T) {
	ctx := context.Background()

	records := memory.NewRecordStore()
	aggregates := memory.NewAggregateStore()
	roster := memory.NewRosterStore(
		employee.Employee{ID: "emp-1", Name: "One", Active: true},
		employee.Employee{ID: "emp-2", Name: "Two", Active: true},
		employee.Employee{ID: "emp-3", Name: "Three", Active: true},
	)

	today := clock.DayKeyOf(time.Now(), time.UTC)
	checkIn := today.Add(8 * time.Hour)
	_, err := records.UpsertCheckIn(ctx, "emp-1", today, checkIn, attendance.StatusPresent, nil)
	require.NoError(t, err)

	// Seed counts that no longer match the records.
	require.NoError(t, aggregates.Replace(ctx, attendance.DayAggregate{
		Date: today, PresentCount: 5, LateCount: 2,
	}))

	jobs := NewReconcileJobs(
		attendanceService.NewRecomputeReconciler(records, aggregates, roster), time.UTC)
	require.NoError(t, jobs.ReconcileRecentDays(ctx))

	agg, err := aggregates.Get(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, agg.PresentCount)
	assert.Equal(t, 0, agg.LateCount)
	assert.Equal(t, 2, agg.AbsentCount)

	// Yesterday had no records, so the whole roster counts as absent.
	yesterday, err := aggregates.Get(ctx, today.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 3, yesterday.AbsentCount)
}

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.Add("counter", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
