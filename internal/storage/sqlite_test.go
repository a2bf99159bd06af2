package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "despesas.db")

	s, err := NewSQLiteSlot(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := s.Get(ctx, DefaultExpenseKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, DefaultExpenseKey, []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, DefaultExpenseKey, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteSlot(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, DefaultExpenseKey)
	if err != nil || string(got) != `[{"id":1}]` {
		t.Fatalf("unexpected value %q err=%v", got, err)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	v1, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	v2, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if v1 != 1 || v2 != 1 {
		t.Fatalf("expected version 1 twice, got %d and %d", v1, v2)
	}
}
