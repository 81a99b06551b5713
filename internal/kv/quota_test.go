package kv

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/matt-dz/recipehub/internal/kv/kvmock"
)

func TestQuota(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	store := NewQuota(base, 10)

	if err := store.Set(ctx, "p1/a", []byte("12345")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "p1/b", []byte("12345")); err != nil {
		t.Fatalf("Set() at limit error = %v", err)
	}
	if err := store.Set(ctx, "p1/c", []byte("1")); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() over limit error = %v, want ErrQuotaExceeded", err)
	}
	if _, err := base.Get(ctx, "p1/c"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejected value reached the underlying store")
	}

	// Other profiles have their own budget.
	if err := store.Set(ctx, "p2/a", []byte("1234567890")); err != nil {
		t.Fatalf("Set() for second profile error = %v", err)
	}

	// Overwriting shrinks usage, deleting frees it.
	if err := store.Set(ctx, "p1/a", []byte("1")); err != nil {
		t.Fatalf("Set() shrink error = %v", err)
	}
	if err := store.Delete(ctx, "p1/b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Set(ctx, "p1/c", []byte("123456789")); err != nil {
		t.Fatalf("Set() after freeing error = %v", err)
	}
}

func TestQuota_LearnsExistingSizes(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	if err := base.Set(ctx, "p1/old", []byte("12345678")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := NewQuota(base, 10)

	// The first write to p1/old learns its 8 bytes.
	if err := store.Set(ctx, "p1/old", []byte("12345678")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "p1/new", []byte("123")); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("Set() error = %v, want ErrQuotaExceeded", err)
	}
}

func TestQuota_CountsWholeProfile(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	if err := base.Set(ctx, "p/createdRecipes", bytes.Repeat([]byte("x"), 90)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := NewQuota(base, 100)

	// p/createdRecipes was never touched through the quota
	if err := store.Set(ctx, "p/favorites", bytes.Repeat([]byte("x"), 50)); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() error = %v, want ErrQuotaExceeded", err)
	}
	if err := store.Set(ctx, "p/favorites", bytes.Repeat([]byte("x"), 10)); err != nil {
		t.Fatalf("Set() within limit error = %v", err)
	}

	// deleting an untouched key frees its bytes
	if err := store.Delete(ctx, "p/createdRecipes"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Set(ctx, "p/likedRecipes", bytes.Repeat([]byte("x"), 90)); err != nil {
		t.Errorf("Set() after delete error = %v", err)
	}
}

func TestQuota_WithoutSizer(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	next := kvmock.NewMockStore(ctrl)

	gomock.InOrder(
		next.EXPECT().Get(ctx, "p/favorites").Return([]byte("1234"), nil),
		next.EXPECT().Set(ctx, "p/favorites", []byte("123456")).Return(nil),
		next.EXPECT().Get(ctx, "p/likedRecipes").Return(nil, ErrNotFound),
	)
	store := NewQuota(next, 10)

	if err := store.Set(ctx, "p/favorites", []byte("123456")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "p/likedRecipes", []byte("12345")); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("Set() error = %v, want ErrQuotaExceeded", err)
	}
}
