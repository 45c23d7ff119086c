package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T, path, profile string) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), path, profile)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, newTestSQLite(t, filepath.Join(t.TempDir(), "status.db"), "default"))
}

func TestSQLiteStore_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "status.db")
	a := newTestSQLite(t, path, "a")
	b := newTestSQLite(t, path, "b")

	state := sampleState()
	if err := a.Save(ctx, &state); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := b.Load(ctx); err != ErrStateNotFound {
		t.Errorf("Expected profile b to be empty, got %v", err)
	}
	if err := b.Reset(ctx); err != nil {
		t.Fatalf("reset b: %v", err)
	}
	if _, err := a.Load(ctx); err != nil {
		t.Errorf("Expected profile a to survive reset of b, got %v", err)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "status.db")

	first, err := NewSQLiteStore(ctx, path, "default")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	state := sampleState()
	if err := first.Save(ctx, &state); err != nil {
		t.Fatalf("save: %v", err)
	}
	first.Close()

	second := newTestSQLite(t, path, "default")
	got, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if got.Player.Name != "JIN" {
		t.Errorf("Expected persisted name JIN, got %q", got.Player.Name)
	}
}
