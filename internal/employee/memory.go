package employee

import (
	"context"
	"sync"

	"kadrio.org/internal/access"
)

// InMemory is a Store kept in process memory, used by tests and local
// development. Insertion order is preserved for List.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]Employee
	order   []string
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]Employee)}
}

func (s *InMemory) Create(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[e.ID]; exists {
		return ErrConflict
	}
	s.records[e.ID] = e
	s.order = append(s.order, e.ID)
	return nil
}

func (s *InMemory) Get(ctx context.Context, id string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (s *InMemory) List(ctx context.Context, filter access.ScopeFilter) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Employee, 0, len(s.order))
	for _, id := range s.order {
		e, ok := s.records[id]
		if !ok {
			continue
		}
		if !filter.Allows(e.DepartmentID, e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *InMemory) SearchByPhoneDigest(ctx context.Context, digest string, filter access.ScopeFilter) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Employee, 0, 1)
	for _, id := range s.order {
		e, ok := s.records[id]
		if !ok || e.PhoneDigest != digest {
			continue
		}
		if !filter.Allows(e.DepartmentID, e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[e.ID]; !ok {
		return ErrNotFound
	}
	s.records[e.ID] = e
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
