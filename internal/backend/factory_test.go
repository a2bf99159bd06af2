package backend

import (
	"context"
	"path/filepath"
	"testing"

	"despesas/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "file", DataDirectory: "d", SQLiteDBPath: "x.db"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Type != FileBackend || cfg.DataDirectory != "d" || cfg.SQLiteDBPath != "x.db" {
		t.Fatalf("unexpected backend config %+v", cfg)
	}
}

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	cases := []Config{
		{Type: MemoryBackend},
		{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "despesas.db")},
	}
	f := NewFactory(nil)
	for _, cfg := range cases {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			ctx := context.Background()
			res, err := f.CreateBackend(ctx, cfg)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if err := res.Slot.Put(ctx, "despesas", []byte("[]")); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := res.Slot.Get(ctx, "despesas")
			if err != nil || string(got) != "[]" {
				t.Fatalf("get: %q err=%v", got, err)
			}
			if err := res.Cleanup(); err != nil {
				t.Fatalf("cleanup: %v", err)
			}
		})
	}
}

func TestCreateBackendRejectsIncompleteConfig(t *testing.T) {
	f := NewFactory(nil)
	for _, cfg := range []Config{
		{Type: "sheets"},
		{Type: SQLiteBackend},
		{Type: FileBackend},
	} {
		if _, err := f.CreateBackend(context.Background(), cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}
