package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/employee"
)

type RosterStore struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewRosterStore(initial ...employee.Employee) *RosterStore {
	s := &RosterStore{employees: make(map[string]employee.Employee)}
	for _, emp := range initial {
		s.employees[emp.ID] = emp
	}
	return s
}

// Put adds or replaces a roster entry. Test seeding helper; the production
// roster is owned by the employee directory.
func (s *RosterStore) Put(emp employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
}

// ListActive implements employee.RosterRepository.
func (s *RosterStore) ListActive(ctx context.Context) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []employee.Employee
	for _, emp := range s.employees {
		if emp.Active {
			active = append(active, emp)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

// CountActive implements employee.RosterRepository.
func (s *RosterStore) CountActive(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, emp := range s.employees {
		if emp.Active {
			count++
		}
	}
	return count, nil
}
