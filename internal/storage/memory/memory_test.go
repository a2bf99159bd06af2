package memory

import (
	"context"
	"errors"
	"testing"

	"despesas/internal/storage"
)

func TestSlotGetPut(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Get(ctx, "despesas"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, "despesas", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "despesas", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "despesas")
	if err != nil || string(got) != `[{"id":1}]` {
		t.Fatalf("unexpected get: %q err=%v", got, err)
	}
	got[0] = 'X'
	again, _ := s.Get(ctx, "despesas")
	if again[0] != '[' {
		t.Fatalf("returned value must be a copy")
	}
}

func TestSlotFailPut(t *testing.T) {
	s := New()
	s.FailPut = errors.New("disk full")
	if err := s.Put(context.Background(), "k", []byte("v")); err == nil {
		t.Fatalf("expected failure")
	}
	if s.Len() != 0 {
		t.Fatalf("failed put must not store anything")
	}
}
