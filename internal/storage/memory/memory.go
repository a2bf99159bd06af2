package memory

import (
	"context"
	"sync"

	"despesas/internal/storage"
)

// Slot keeps values in process memory. Nothing survives a restart.
type Slot struct {
	mu     sync.Mutex
	values map[string][]byte
	// FailPut, when set, makes every Put return it. Used to exercise write failures.
	FailPut error
}

func New() *Slot {
	return &Slot{values: map[string][]byte{}}
}

// Get implements storage.Slot
func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements storage.Slot
func (s *Slot) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Len reports how many keys hold a value.
func (s *Slot) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *Slot) Close() error { return nil }
