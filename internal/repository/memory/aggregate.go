package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
)

type AggregateStore struct {
	mu sync.RWMutex
	// Structure: [dayKey]aggregate
	aggregates map[string]attendance.DayAggregate
}

func NewAggregateStore() *AggregateStore {
	return &AggregateStore{
		aggregates: make(map[string]attendance.DayAggregate),
	}
}

// Get implements attendance.AggregateRepository.
func (s *AggregateStore) Get(ctx context.Context, day time.Time) (attendance.DayAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agg, ok := s.aggregates[dayKey(day)]
	if !ok {
		return attendance.DayAggregate{}, attendance.ErrAggregateNotFound
	}
	return agg, nil
}

// EnsureDay implements attendance.AggregateRepository. Creating under the
// lock makes concurrent first-events converge on one zero row; an existing
// row is never re-initialized.
func (s *AggregateStore) EnsureDay(ctx context.Context, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(day)
	if _, ok := s.aggregates[key]; ok {
		return nil
	}
	s.aggregates[key] = attendance.DayAggregate{Date: day, UpdatedAt: time.Now()}
	return nil
}

// ApplyDelta implements attendance.AggregateRepository.
func (s *AggregateStore) ApplyDelta(ctx context.Context, day time.Time, d attendance.Delta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(day)
	agg, ok := s.aggregates[key]
	if !ok {
		return attendance.ErrAggregateNotFound
	}

	agg.PresentCount = clampZero(agg.PresentCount + d.Present)
	agg.LateCount = clampZero(agg.LateCount + d.Late)
	agg.LeaveCount = clampZero(agg.LeaveCount + d.Leave)
	agg.AbsentCount = clampZero(agg.AbsentCount + d.Absent)
	agg.UpdatedAt = time.Now()

	s.aggregates[key] = agg
	return nil
}

// Replace implements attendance.AggregateRepository.
func (s *AggregateStore) Replace(ctx context.Context, agg attendance.DayAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg.UpdatedAt = time.Now()
	s.aggregates[dayKey(agg.Date)] = agg
	return nil
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
