package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestRecordStore_UpsertCheckIn_FreshRecord(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	at := day().Add(9 * time.Hour)
	loc := "HQ"
	res, err := store.UpsertCheckIn(ctx, "emp-1", day(), at, attendance.StatusPresent, &loc)
	require.NoError(t, err)

	assert.Nil(t, res.PreviousStatus)
	assert.False(t, res.WasAbsentBefore)
	require.NotNil(t, res.Record.CheckIn)
	assert.Equal(t, at, *res.Record.CheckIn)
	assert.Equal(t, attendance.StatusPresent, res.Record.Status)
}

func TestRecordStore_UpsertCheckIn_OverRecordedAbsence(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	absent := attendance.StatusAbsent
	_, err := store.HRUpsert(ctx, "emp-1", day(), attendance.RecordPatch{Status: &absent})
	require.NoError(t, err)

	res, err := store.UpsertCheckIn(ctx, "emp-1", day(), day().Add(10*time.Hour), attendance.StatusLate, nil)
	require.NoError(t, err)

	require.NotNil(t, res.PreviousStatus)
	assert.Equal(t, attendance.StatusAbsent, *res.PreviousStatus)
	assert.True(t, res.WasAbsentBefore)
	assert.Equal(t, attendance.StatusLate, res.Record.Status)
}

func TestRecordStore_UpsertCheckIn_Conflict(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	_, err := store.UpsertCheckIn(ctx, "emp-1", day(), day().Add(9*time.Hour), attendance.StatusPresent, nil)
	require.NoError(t, err)

	_, err = store.UpsertCheckIn(ctx, "emp-1", day(), day().Add(10*time.Hour), attendance.StatusLate, nil)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	// Same employee, different day is a fresh record.
	nextDay := day().AddDate(0, 0, 1)
	_, err = store.UpsertCheckIn(ctx, "emp-1", nextDay, nextDay.Add(9*time.Hour), attendance.StatusPresent, nil)
	assert.NoError(t, err)
}

func TestRecordStore_UpsertCheckOut(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	_, err := store.UpsertCheckOut(ctx, "emp-1", day(), day().Add(17*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)

	_, err = store.UpsertCheckIn(ctx, "emp-1", day(), day().Add(9*time.Hour), attendance.StatusPresent, nil)
	require.NoError(t, err)

	rec, err := store.UpsertCheckOut(ctx, "emp-1", day(), day().Add(17*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	// Checkout preserves the classification.
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	_, err = store.UpsertCheckOut(ctx, "emp-1", day(), day().Add(18*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestRecordStore_HRUpsert_PatchesSubset(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	in := day().Add(9 * time.Hour)
	loc := "HQ"
	_, err := store.UpsertCheckIn(ctx, "emp-1", day(), in, attendance.StatusPresent, &loc)
	require.NoError(t, err)

	// Patch only the status; times and location survive.
	leave := attendance.StatusLeave
	rec, err := store.HRUpsert(ctx, "emp-1", day(), attendance.RecordPatch{Status: &leave})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLeave, rec.Status)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, in, *rec.CheckIn)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "HQ", *rec.Location)
}

func TestAggregateStore_EnsureDayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewAggregateStore()

	require.NoError(t, store.EnsureDay(ctx, day()))
	require.NoError(t, store.ApplyDelta(ctx, day(), attendance.Delta{Present: 1}))

	// A second ensure must not re-initialize the row.
	require.NoError(t, store.EnsureDay(ctx, day()))

	agg, err := store.Get(ctx, day())
	require.NoError(t, err)
	assert.Equal(t, 1, agg.PresentCount)
}

func TestAggregateStore_ApplyDeltaRequiresRow(t *testing.T) {
	store := NewAggregateStore()
	err := store.ApplyDelta(context.Background(), day(), attendance.Delta{Present: 1})
	assert.ErrorIs(t, err, attendance.ErrAggregateNotFound)
}

func TestAggregateStore_CountersClampAtZero(t *testing.T) {
	ctx := context.Background()
	store := NewAggregateStore()

	require.NoError(t, store.EnsureDay(ctx, day()))
	require.NoError(t, store.ApplyDelta(ctx, day(), attendance.Delta{Absent: -1}))

	agg, err := store.Get(ctx, day())
	require.NoError(t, err)
	assert.Equal(t, 0, agg.AbsentCount)
}
