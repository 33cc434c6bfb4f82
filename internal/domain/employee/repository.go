package employee

import "context"

// RosterRepository is the read-only view of the employee directory. The
// active roster is the source of truth for absence counting; this service
// never writes to it.
type RosterRepository interface {
	// ListActive returns every currently active roster member.
	ListActive(ctx context.Context) ([]Employee, error)

	// CountActive returns the active roster size, used by the full-recompute
	// reconciliation to derive the absent count.
	CountActive(ctx context.Context) (int, error)
}
