package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"despesas/internal/storage"
)

func TestSlotPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Get(ctx, "despesas"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, "despesas", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, "despesas")
	if err != nil || string(got) != `[]` {
		t.Fatalf("unexpected get: %q err=%v", got, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "despesas.json" {
		t.Fatalf("expected only despesas.json, got %v", entries)
	}
}

func TestSlotRejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "../x", "a/b", filepath.Join("..", "etc")} {
		if err := s.Put(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
