// Package memory provides mutex-guarded in-process implementations of the
// attendance repositories. The store-level atomicity the engine relies on
// (conditional check-in upsert, ensure-then-increment on aggregates) is
// provided here by a per-store mutex held only for the critical section,
// which trades single-day throughput for simplicity. Used by tests and by
// the memory store mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
)

type RecordStore struct {
	mu sync.RWMutex
	// Structure: [dayKey][employeeID]record
	records map[string]map[string]attendance.Record
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]map[string]attendance.Record),
	}
}

func dayKey(day time.Time) string {
	return day.Format(clock.DayFormat)
}

// Get implements attendance.RecordRepository.
func (s *RecordStore) Get(ctx context.Context, employeeID string, day time.Time) (attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[dayKey(day)][employeeID]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

// UpsertCheckIn implements attendance.RecordRepository. The check-then-write
// runs entirely under the store lock, so concurrent check-ins for the same
// pair serialize and exactly one wins.
func (s *RecordStore) UpsertCheckIn(ctx context.Context, employeeID string, day time.Time, at time.Time, status attendance.Status, location *string) (attendance.CheckInResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(day)
	if s.records[key] == nil {
		s.records[key] = make(map[string]attendance.Record)
	}

	now := time.Now()
	var res attendance.CheckInResult

	if prev, ok := s.records[key][employeeID]; ok {
		if prev.CheckIn != nil {
			return attendance.CheckInResult{}, attendance.ErrAlreadyCheckedIn
		}
		prevStatus := prev.Status
		res.PreviousStatus = &prevStatus
		res.WasAbsentBefore = prevStatus == attendance.StatusAbsent

		prev.CheckIn = &at
		prev.Status = status
		if location != nil {
			prev.Location = location
		}
		prev.UpdatedAt = now
		s.records[key][employeeID] = prev
		res.Record = prev
		return res, nil
	}

	rec := attendance.Record{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    &at,
		Status:     status,
		Location:   location,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.records[key][employeeID] = rec
	res.Record = rec
	return res, nil
}

// UpsertCheckOut implements attendance.RecordRepository.
func (s *RecordStore) UpsertCheckOut(ctx context.Context, employeeID string, day time.Time, at time.Time) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(day)
	rec, ok := s.records[key][employeeID]
	if !ok || rec.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNoCheckIn
	}
	if rec.CheckOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	rec.CheckOut = &at
	rec.UpdatedAt = time.Now()
	s.records[key][employeeID] = rec
	return rec, nil
}

// HRUpsert implements attendance.RecordRepository.
func (s *RecordStore) HRUpsert(ctx context.Context, employeeID string, day time.Time, patch attendance.RecordPatch) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(day)
	if s.records[key] == nil {
		s.records[key] = make(map[string]attendance.Record)
	}

	now := time.Now()
	rec, ok := s.records[key][employeeID]
	if !ok {
		rec = attendance.Record{
			EmployeeID: employeeID,
			Date:       day,
			Status:     attendance.StatusAbsent,
			CreatedAt:  now,
		}
	}

	if patch.CheckIn != nil {
		rec.CheckIn = patch.CheckIn
	}
	if patch.CheckOut != nil {
		rec.CheckOut = patch.CheckOut
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.Location != nil {
		rec.Location = patch.Location
	}
	rec.UpdatedAt = now

	s.records[key][employeeID] = rec
	return rec, nil
}

// ListForDay implements attendance.RecordRepository.
func (s *RecordStore) ListForDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byEmployee := s.records[dayKey(day)]
	records := make([]attendance.Record, 0, len(byEmployee))
	for _, rec := range byEmployee {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].EmployeeID < records[j].EmployeeID
	})
	return records, nil
}

// ListForEmployee implements attendance.RecordRepository.
func (s *RecordStore) ListForEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []attendance.Record
	for _, byEmployee := range s.records {
		if rec, ok := byEmployee[employeeID]; ok {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
