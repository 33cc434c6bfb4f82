package postgresql

import (
	"context"
	"fmt"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/employee"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

// NewRosterRepository reads the employee directory's table. This service
// treats the roster as read-only.
func NewRosterRepository(db *database.DB) employee.RosterRepository {
	return &rosterRepository{db: db}
}

// ListActive implements employee.RosterRepository.
func (r *rosterRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT id, name, active, created_at, updated_at
		FROM employees
		WHERE active
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// CountActive implements employee.RosterRepository.
func (r *rosterRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}
