package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Error("missing key reported present")
	}

	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, ok, _ := m.Get(ctx, "k"); !ok || v != "v2" {
		t.Errorf("Get = %q, %v; want v2 (last write wins)", v, ok)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("deleted key still present")
	}

	m.Set(ctx, "a", "1")
	m.Set(ctx, "b", "2")
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "a"); ok {
		t.Error("Clear left keys behind")
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := f.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set(ctx, "sim", "s-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Delete(ctx, "sim"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok, _ := reopened.Get(ctx, "token"); !ok || v != "abc" {
		t.Errorf("reopened Get(token) = %q, %v; want abc", v, ok)
	}
	if _, ok, _ := reopened.Get(ctx, "sim"); ok {
		t.Error("deleted key survived reopen")
	}
}

func TestFileStoreCorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile on corrupt file: %v", err)
	}
	if _, ok, _ := f.Get(context.Background(), "anything"); ok {
		t.Error("corrupt file yielded data")
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	f, _ := NewFile(path)
	f.Set(ctx, "a", "1")
	if err := f.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	reopened, _ := NewFile(path)
	if _, ok, _ := reopened.Get(ctx, "a"); ok {
		t.Error("Clear did not persist")
	}
}
