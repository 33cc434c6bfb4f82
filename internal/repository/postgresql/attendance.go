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

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepository{db: db}
}

const recordColumns = `employee_id, date, check_in, check_out, status, location, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.Status, &rec.Location, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Get implements attendance.RecordRepository.
func (r *recordRepository) Get(ctx context.Context, employeeID string, day time.Time) (attendance.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// UpsertCheckIn implements attendance.RecordRepository.
//
// The whole operation is one statement so that two concurrent check-ins for
// the same (employee, day) race inside the database, not in this process: the
// conditional DO UPDATE fires only while check_in is still NULL, so exactly
// one caller wins and the loser sees zero returned rows.
func (r *recordRepository) UpsertCheckIn(ctx context.Context, employeeID string, day time.Time, at time.Time, status attendance.Status, location *string) (attendance.CheckInResult, error) {
	query := `
		WITH prev AS (
			SELECT status FROM attendance_records
			WHERE employee_id = $1 AND date = $2
		), up AS (
			INSERT INTO attendance_records (employee_id, date, check_in, status, location)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (employee_id, date) DO UPDATE
				SET check_in = EXCLUDED.check_in,
				    status = EXCLUDED.status,
				    location = COALESCE(EXCLUDED.location, attendance_records.location),
				    updated_at = now()
				WHERE attendance_records.check_in IS NULL
			RETURNING ` + recordColumns + `
		)
		SELECT up.employee_id, up.date, up.check_in, up.check_out, up.status,
		       up.location, up.created_at, up.updated_at, prev.status
		FROM up LEFT JOIN prev ON TRUE
	`

	var res attendance.CheckInResult
	var prevStatus *string
	err := r.db.QueryRow(ctx, query, employeeID, day, at, status, location).Scan(
		&res.Record.EmployeeID, &res.Record.Date, &res.Record.CheckIn, &res.Record.CheckOut,
		&res.Record.Status, &res.Record.Location, &res.Record.CreatedAt, &res.Record.UpdatedAt,
		&prevStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conditional update did not fire: a check-in already exists.
			return attendance.CheckInResult{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.CheckInResult{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}

	if prevStatus != nil {
		s := attendance.Status(*prevStatus)
		res.PreviousStatus = &s
		res.WasAbsentBefore = s == attendance.StatusAbsent
	}

	return res, nil
}

// UpsertCheckOut implements attendance.RecordRepository.
func (r *recordRepository) UpsertCheckOut(ctx context.Context, employeeID string, day time.Time, at time.Time) (attendance.Record, error) {
	query := `
		UPDATE attendance_records
		SET check_out = $3, updated_at = now()
		WHERE employee_id = $1 AND date = $2
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, employeeID, day, at))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, fmt.Errorf("failed to upsert check-out: %w", err)
	}

	// The conditional update did not fire; read the record once more only to
	// pick the right error.
	existing, getErr := r.Get(ctx, employeeID, day)
	if getErr != nil {
		if errors.Is(getErr, attendance.ErrRecordNotFound) {
			return attendance.Record{}, attendance.ErrNoCheckIn
		}
		return attendance.Record{}, getErr
	}
	if existing.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNoCheckIn
	}
	return attendance.Record{}, attendance.ErrAlreadyCheckedOut
}

// HRUpsert implements attendance.RecordRepository. Unlike check-in, the
// overwrite is unconditional: HR corrections win over whatever is stored.
// A freshly created record with no explicit status is a manual absence entry.
func (r *recordRepository) HRUpsert(ctx context.Context, employeeID string, day time.Time, patch attendance.RecordPatch) (attendance.Record, error) {
	query := `
		INSERT INTO attendance_records (employee_id, date, check_in, check_out, status, location)
		VALUES ($1, $2, $3, $4, COALESCE($5, 'absent'), $6)
		ON CONFLICT (employee_id, date) DO UPDATE
			SET check_in = COALESCE($3, attendance_records.check_in),
			    check_out = COALESCE($4, attendance_records.check_out),
			    status = COALESCE($5, attendance_records.status),
			    location = COALESCE($6, attendance_records.location),
			    updated_at = now()
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(r.db.QueryRow(ctx, query,
		employeeID, day, patch.CheckIn, patch.CheckOut, patch.Status, patch.Location,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return rec, nil
}

// ListForDay implements attendance.RecordRepository.
func (r *recordRepository) ListForDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE date = $1
		ORDER BY employee_id
	`

	rows, err := r.db.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records for day: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// ListForEmployee implements attendance.RecordRepository.
func (r *recordRepository) ListForEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		ORDER BY date DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records for employee: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
