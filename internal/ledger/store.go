// Package ledger owns the expense collection and keeps it in step with
// durable storage.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"despesas/internal/core"
)

var (
	ErrNotFound = errors.New("expense not found")
	ErrPersist  = errors.New("persist expenses")
)

// Persister is the load/save bridge to durable storage.
type Persister interface {
	Load(ctx context.Context) []core.Expense
	Save(ctx context.Context, expenses []core.Expense) error
}

// Store holds expenses in insertion order. Each mutation is saved in full
// before it returns; when the save fails the mutation is undone so memory
// never runs ahead of storage.
type Store struct {
	mu        sync.Mutex
	items     []core.Expense
	persister Persister
	ids       *IDAllocator
	logger    *slog.Logger
}

type Option func(*Store)

// WithClock sets the time source used for id allocation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids = NewIDAllocator(now) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open loads the stored collection and returns a ready store.
func Open(ctx context.Context, persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		ids:       NewIDAllocator(nil),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = persister.Load(ctx)
	for _, e := range s.items {
		s.ids.Observe(e.ID)
	}
	s.logger.InfoContext(ctx, "Ledger loaded", "count", len(s.items))
	return s
}

// Add appends a new expense with a fresh id.
func (s *Store) Add(ctx context.Context, en core.Entry) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := core.Expense{ID: s.ids.Next()}.WithEntry(en)
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	prev := s.items
	s.items = append(slices.Clip(prev), e)
	if err := s.save(ctx); err != nil {
		s.items = prev
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"amount_cents", e.Amount.Cents,
		"payer", e.Payer,
		"category", e.Category)
	return e, nil
}

// Update replaces every field of the expense except its id. The position in
// the list does not change.
func (s *Store) Update(ctx context.Context, id int64, en core.Entry) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, ErrNotFound)
	}
	e := s.items[i].WithEntry(en)
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}
	prev := s.items
	s.items = slices.Clone(prev)
	s.items[i] = e
	if err := s.save(ctx); err != nil {
		s.items = prev
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense updated", "id", id, "amount_cents", e.Amount.Cents)
	return e, nil
}

// Delete removes the expense with id. A missing id is not an error: it
// reports false and writes nothing.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "Delete of unknown expense ignored", "id", id)
		return false, nil
	}
	prev := s.items
	s.items = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.save(ctx); err != nil {
		s.items = prev
		return false, err
	}

	s.logger.InfoContext(ctx, "Expense deleted", "id", id)
	return true, nil
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Get returns the expense with id.
func (s *Store) Get(id int64) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return core.Expense{}, false
}

// Len returns the number of expenses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(e core.Expense) bool { return e.ID == id })
}

func (s *Store) save(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.items); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist expenses, change rolled back", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
