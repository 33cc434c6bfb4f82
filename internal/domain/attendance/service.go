package attendance

import (
	"context"
	"time"
)

// Service is the attendance engine's public surface. Caller identity comes
// from the JWT claims on the context; check-in and check-out are always
// self-service, HRUpsert requires the hr role (enforced at the router).
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (View, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (View, error)
	HRUpsert(ctx context.Context, req HRUpsertRequest) (View, error)

	// ListByDay returns every roster member's attendance for the day,
	// synthesizing absent views for members with no stored record. As a side
	// effect it runs a full recompute of the day's aggregate, so the read
	// path self-heals drift.
	ListByDay(ctx context.Context, day time.Time) (DayListResponse, error)

	// MyHistory returns the caller's records, newest day first.
	MyHistory(ctx context.Context, limit int) ([]View, error)

	// StatsByDay returns the day's counts after a full recompute.
	StatsByDay(ctx context.Context, day time.Time) (Counts, error)
}
