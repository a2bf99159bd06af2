// Package categories owns the ordered list of category names.
//
// Expenses refer to categories by name only. Renaming or removing a category
// leaves existing expenses untouched, so they may keep a name that is no
// longer listed.
package categories

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Persister saves the category list. A store without one keeps categories
// for the lifetime of the process only.
type Persister interface {
	Load(ctx context.Context) ([]string, bool)
	Save(ctx context.Context, names []string) error
}

type Store struct {
	mu        sync.Mutex
	names     []string
	persister Persister
	logger    *slog.Logger
}

type Option func(*Store)

func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns a store seeded with a copy of seed, taken as is. When a
// persister is attached and holds a saved list, that list replaces the seed.
func New(ctx context.Context, seed []string, opts ...Option) *Store {
	s := &Store{names: slices.Clone(seed), logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.persister != nil {
		if saved, ok := s.persister.Load(ctx); ok {
			s.names = saved
		}
	}
	return s
}

// Add trims name and appends it unless it is empty or already listed.
func (s *Store) Add(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" || slices.Contains(s.names, name) {
		return false, nil
	}
	return s.commit(ctx, append(slices.Clip(s.names), name), "Category added", "name", name)
}

// RenameAt replaces the name at index. Duplicates are not checked.
func (s *Store) RenameAt(ctx context.Context, index int, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" || index < 0 || index >= len(s.names) {
		return false, nil
	}
	next := slices.Clone(s.names)
	old := next[index]
	next[index] = name
	return s.commit(ctx, next, "Category renamed", "index", index, "from", old, "to", name)
}

// RemoveAt drops the name at index.
func (s *Store) RemoveAt(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.names) {
		return false, nil
	}
	old := s.names[index]
	next := slices.Delete(slices.Clone(s.names), index, index+1)
	return s.commit(ctx, next, "Category removed", "index", index, "name", old)
}

// List returns a copy of the names in display order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.names)
}

// At returns the name at index.
func (s *Store) At(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.names) {
		return "", false
	}
	return s.names[index], true
}

func (s *Store) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.names, name)
}

// commit must be called with mu held.
func (s *Store) commit(ctx context.Context, next []string, msg string, args ...any) (bool, error) {
	if s.persister != nil {
		if err := s.persister.Save(ctx, next); err != nil {
			s.logger.ErrorContext(ctx, "Failed to persist categories", "error", err)
			return false, fmt.Errorf("persist categories: %w", err)
		}
	}
	s.names = next
	s.logger.InfoContext(ctx, msg, args...)
	return true, nil
}
