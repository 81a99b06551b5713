package kv

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "profile/favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "profile/favorites", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := store.Get(ctx, "profile/favorites")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, []byte(`[{"id":1}]`)) {
		t.Errorf("Get() = %q", got)
	}

	if err := store.Set(ctx, "profile/favorites", []byte(`[]`)); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, err = store.Get(ctx, "profile/favorites")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, []byte(`[]`)) {
		t.Errorf("Get() after overwrite = %q", got)
	}

	if err := store.Delete(ctx, "profile/favorites"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "profile/favorites"); err != nil {
		t.Fatalf("Delete() of missing key error = %v", err)
	}
	if _, err := store.Get(ctx, "profile/favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}

	for _, key := range []string{"", "/abs", "a/../b", "a//b", "trailing/"} {
		if err := store.Set(ctx, key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}

	if sizer, ok := store.(Sizer); ok {
		runUsageContract(t, store, sizer)
	}
}

func runUsageContract(t *testing.T, store Store, sizer Sizer) {
	t.Helper()
	ctx := context.Background()

	values := map[string]string{
		"usage/favorites":      "12345",
		"usage/createdRecipes": "123",
		"usage2/favorites":     "1234567",
	}
	for key, value := range values {
		if err := store.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}
	t.Cleanup(func() {
		for key := range values {
			_ = store.Delete(ctx, key)
		}
	})

	tests := []struct {
		namespace string
		want      int64
	}{
		{"usage", 8},
		{"usage2", 7},
		{"empty", 0},
	}
	for _, tt := range tests {
		got, err := sizer.Usage(ctx, tt.namespace)
		if err != nil {
			t.Fatalf("Usage(%q) error = %v", tt.namespace, err)
		}
		if got != tt.want {
			t.Errorf("Usage(%q) = %d, want %d", tt.namespace, got, tt.want)
		}
	}
}

func TestMemory(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	value := []byte("abc")
	if err := store.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'z'
	got, _ := store.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}

func TestDir(t *testing.T) {
	store, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir() error = %v", err)
	}
	runStoreContract(t, store)
}

func TestDir_WritesUnderBase(t *testing.T) {
	base := t.TempDir()
	store, err := NewDir(base)
	if err != nil {
		t.Fatalf("NewDir() error = %v", err)
	}
	if err := store.Set(context.Background(), "p1/createdRecipes", []byte("[]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(base, "p1", "*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 || filepath.Base(matches[0]) != "createdRecipes.json" {
		t.Errorf("expected a single createdRecipes.json file, got %v", matches)
	}
}

func TestSQLite(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "recipehub.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	runStoreContract(t, store)
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	store := WithPrefix(base, "profile-1")

	if err := store.Set(ctx, "likedRecipes", []byte("[]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := base.Get(ctx, "profile-1/likedRecipes"); err != nil {
		t.Errorf("expected prefixed key in base store, got %v", err)
	}
	if _, err := WithPrefix(base, "profile-2").Get(ctx, "likedRecipes"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected other profile to be isolated, got %v", err)
	}
}
