package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/domain/employee"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	records    attendance.RecordRepository
	aggregates attendance.AggregateRepository
	roster     employee.RosterRepository
	policy     attendance.LatePolicy
	loc        *time.Location
	delta      AggregateReconciler
	recompute  AggregateReconciler
}

func NewAttendanceService(
	records attendance.RecordRepository,
	aggregates attendance.AggregateRepository,
	roster employee.RosterRepository,
	policy attendance.LatePolicy,
	loc *time.Location,
) attendance.Service {
	return &AttendanceServiceImpl{
		records:    records,
		aggregates: aggregates,
		roster:     roster,
		policy:     policy,
		loc:        loc,
		delta:      NewDeltaReconciler(aggregates),
		recompute:  NewRecomputeReconciler(records, aggregates, roster),
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// CheckIn implements attendance.Service. The record write always happens
// before the aggregate delta; a delta failure after a successful write is
// surfaced (after internal retries) rather than silently dropped, and the
// next full recompute heals the counts either way.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.View, error) {
	if err := req.Validate(); err != nil {
		return attendance.View{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.View{}, err
	}

	nowLocal := time.Now().In(s.loc)
	day := clock.DayKeyOf(nowLocal, s.loc)

	at := nowLocal
	if req.Time != nil {
		h, m, err := clock.ParseTimeOfDay(*req.Time)
		if err != nil {
			return attendance.View{}, err
		}
		at = clock.At(day, h, m)
	}

	status := s.policy.Classify(clock.FormatTimeOfDay(at))

	res, err := s.records.UpsertCheckIn(ctx, employeeID, day, at, status, req.Location)
	if err != nil {
		return attendance.View{}, err
	}

	change := &StatusChange{NewStatus: status, WasAbsentBefore: res.WasAbsentBefore}
	if err := s.delta.Reconcile(ctx, day, change); err != nil {
		return attendance.View{}, err
	}

	return s.recordToView(res.Record, ""), nil
}

// CheckOut implements attendance.Service. Checkout never flips the day's
// classification, so no aggregate change happens here.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.View, error) {
	if err := req.Validate(); err != nil {
		return attendance.View{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.View{}, err
	}

	nowLocal := time.Now().In(s.loc)
	day := clock.DayKeyOf(nowLocal, s.loc)

	at := nowLocal
	if req.Time != nil {
		h, m, err := clock.ParseTimeOfDay(*req.Time)
		if err != nil {
			return attendance.View{}, err
		}
		at = clock.At(day, h, m)
	}

	rec, err := s.records.UpsertCheckOut(ctx, employeeID, day, at)
	if err != nil {
		return attendance.View{}, err
	}

	return s.recordToView(rec, ""), nil
}

// HRUpsert implements attendance.Service. The overwrite can change any field
// from any prior state, so only the authoritative full recompute may
// reconcile it.
func (s *AttendanceServiceImpl) HRUpsert(ctx context.Context, req attendance.HRUpsertRequest) (attendance.View, error) {
	if err := req.Validate(); err != nil {
		return attendance.View{}, err
	}

	day, err := clock.ParseDay(req.Date, s.loc)
	if err != nil {
		return attendance.View{}, err
	}

	patch := attendance.RecordPatch{Location: req.Location}
	if req.CheckIn != nil {
		h, m, err := clock.ParseTimeOfDay(*req.CheckIn)
		if err != nil {
			return attendance.View{}, err
		}
		t := clock.At(day, h, m)
		patch.CheckIn = &t
	}
	if req.CheckOut != nil {
		h, m, err := clock.ParseTimeOfDay(*req.CheckOut)
		if err != nil {
			return attendance.View{}, err
		}
		t := clock.At(day, h, m)
		patch.CheckOut = &t
	}
	if req.Status != nil {
		status := attendance.Status(*req.Status)
		patch.Status = &status
	}

	rec, err := s.records.HRUpsert(ctx, req.EmployeeID, day, patch)
	if err != nil {
		return attendance.View{}, err
	}

	if err := s.recompute.Reconcile(ctx, day, nil); err != nil {
		return attendance.View{}, err
	}

	return s.recordToView(rec, ""), nil
}

// ListByDay implements attendance.Service. Absent rows for roster members
// with no stored record are a pure read-time projection, never written back.
func (s *AttendanceServiceImpl) ListByDay(ctx context.Context, day time.Time) (attendance.DayListResponse, error) {
	if err := s.recompute.Reconcile(ctx, day, nil); err != nil {
		return attendance.DayListResponse{}, err
	}

	records, err := s.records.ListForDay(ctx, day)
	if err != nil {
		return attendance.DayListResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	roster, err := s.roster.ListActive(ctx)
	if err != nil {
		return attendance.DayListResponse{}, fmt.Errorf("failed to list active roster: %w", err)
	}

	names := make(map[string]string, len(roster))
	for _, emp := range roster {
		names[emp.ID] = emp.Name
	}

	recorded := make(map[string]bool, len(records))
	views := make([]attendance.View, 0, len(roster))
	for _, rec := range records {
		recorded[rec.EmployeeID] = true
		views = append(views, s.recordToView(rec, names[rec.EmployeeID]))
	}

	dateStr := day.Format(clock.DayFormat)
	for _, emp := range roster {
		if recorded[emp.ID] {
			continue
		}
		views = append(views, attendance.View{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Date:         dateStr,
			WorkingHours: clock.WorkingHours(nil, nil),
			Status:       string(attendance.StatusAbsent),
		})
	}

	stats, err := s.statsFor(ctx, day)
	if err != nil {
		return attendance.DayListResponse{}, err
	}

	return attendance.DayListResponse{
		Date:    dateStr,
		Records: views,
		Stats:   stats,
	}, nil
}

// MyHistory implements attendance.Service.
func (s *AttendanceServiceImpl) MyHistory(ctx context.Context, limit int) ([]attendance.View, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}

	records, err := s.records.ListForEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	views := make([]attendance.View, 0, len(records))
	for _, rec := range records {
		views = append(views, s.recordToView(rec, ""))
	}
	return views, nil
}

// StatsByDay implements attendance.Service. Like ListByDay, the read runs a
// full recompute first so out-of-band drift never survives a stats query.
func (s *AttendanceServiceImpl) StatsByDay(ctx context.Context, day time.Time) (attendance.Counts, error) {
	if err := s.recompute.Reconcile(ctx, day, nil); err != nil {
		return attendance.Counts{}, err
	}
	return s.statsFor(ctx, day)
}

func (s *AttendanceServiceImpl) statsFor(ctx context.Context, day time.Time) (attendance.Counts, error) {
	agg, err := s.aggregates.Get(ctx, day)
	if err != nil {
		return attendance.Counts{}, fmt.Errorf("failed to get daily aggregate: %w", err)
	}
	return attendance.Counts{
		Present: agg.PresentCount,
		Late:    agg.LateCount,
		Leave:   agg.LeaveCount,
		Absent:  agg.AbsentCount,
	}, nil
}

func (s *AttendanceServiceImpl) recordToView(rec attendance.Record, name string) attendance.View {
	view := attendance.View{
		EmployeeID:   rec.EmployeeID,
		EmployeeName: name,
		Date:         rec.Date.Format(clock.DayFormat),
		WorkingHours: clock.WorkingHours(rec.CheckIn, rec.CheckOut),
		Status:       string(rec.Status),
		Location:     rec.Location,
	}
	if rec.CheckIn != nil {
		t := clock.FormatTimeOfDay(rec.CheckIn.In(s.loc))
		view.CheckIn = &t
	}
	if rec.CheckOut != nil {
		t := clock.FormatTimeOfDay(rec.CheckOut.In(s.loc))
		view.CheckOut = &t
	}
	return view
}
