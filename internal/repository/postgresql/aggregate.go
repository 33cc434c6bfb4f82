package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type aggregateRepository struct {
	db *database.DB
}

func NewAggregateRepository(db *database.DB) attendance.AggregateRepository {
	return &aggregateRepository{db: db}
}

// Get implements attendance.AggregateRepository.
func (r *aggregateRepository) Get(ctx context.Context, day time.Time) (attendance.DayAggregate, error) {
	query := `
		SELECT date, present_count, late_count, leave_count, absent_count, updated_at
		FROM daily_aggregates
		WHERE date = $1
	`

	var agg attendance.DayAggregate
	err := r.db.QueryRow(ctx, query, day).Scan(
		&agg.Date, &agg.PresentCount, &agg.LateCount, &agg.LeaveCount,
		&agg.AbsentCount, &agg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DayAggregate{}, attendance.ErrAggregateNotFound
		}
		return attendance.DayAggregate{}, fmt.Errorf("failed to get daily aggregate: %w", err)
	}

	return agg, nil
}

// EnsureDay implements attendance.AggregateRepository. DO NOTHING on conflict
// makes concurrent first-events on a day converge on a single zero row
// without ever re-initializing an existing one.
func (r *aggregateRepository) EnsureDay(ctx context.Context, day time.Time) error {
	query := `
		INSERT INTO daily_aggregates (date)
		VALUES ($1)
		ON CONFLICT (date) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, day); err != nil {
		return fmt.Errorf("failed to ensure daily aggregate row: %w", err)
	}
	return nil
}

// ApplyDelta implements attendance.AggregateRepository. A single UPDATE is
// atomic per row in postgres, so concurrent deltas on the same day serialize
// in the store rather than lost-updating each other.
func (r *aggregateRepository) ApplyDelta(ctx context.Context, day time.Time, d attendance.Delta) error {
	query := `
		UPDATE daily_aggregates
		SET present_count = GREATEST(present_count + $2, 0),
		    late_count    = GREATEST(late_count + $3, 0),
		    leave_count   = GREATEST(leave_count + $4, 0),
		    absent_count  = GREATEST(absent_count + $5, 0),
		    updated_at    = now()
		WHERE date = $1
	`

	tag, err := r.db.Exec(ctx, query, day, d.Present, d.Late, d.Leave, d.Absent)
	if err != nil {
		return fmt.Errorf("failed to apply aggregate delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAggregateNotFound
	}
	return nil
}

// Replace implements attendance.AggregateRepository.
func (r *aggregateRepository) Replace(ctx context.Context, agg attendance.DayAggregate) error {
	query := `
		INSERT INTO daily_aggregates (date, present_count, late_count, leave_count, absent_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE
			SET present_count = EXCLUDED.present_count,
			    late_count    = EXCLUDED.late_count,
			    leave_count   = EXCLUDED.leave_count,
			    absent_count  = EXCLUDED.absent_count,
			    updated_at    = now()
	`

	if _, err := r.db.Exec(ctx, query,
		agg.Date, agg.PresentCount, agg.LateCount, agg.LeaveCount, agg.AbsentCount,
	); err != nil {
		return fmt.Errorf("failed to replace daily aggregate: %w", err)
	}
	return nil
}
