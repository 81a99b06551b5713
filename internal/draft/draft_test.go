package draft

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/kv/kvmock"
	"github.com/matt-dz/recipehub/internal/recipe"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func soupForm() recipe.Form {
	return recipe.Form{
		Title:        "Soup",
		Ingredients:  []string{"Water"},
		Instructions: []string{"Boil it"},
		Servings:     2,
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := New(kv.NewMemory(), Options{Now: c.Now}).WithProfile("p1")

	if _, err := m.Save(ctx, soupForm()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err := m.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got.Data, soupForm()) {
		t.Errorf("Load().Data = %+v, want %+v", got.Data, soupForm())
	}
	if age := got.Age(c.now); age != 0 {
		t.Errorf("Age() = %v, want 0", age)
	}
}

func TestLoad_Expiry(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{name: "fresh", elapsed: time.Hour, want: true},
		{name: "just under ttl", elapsed: 48*time.Hour - time.Millisecond, want: true},
		{name: "at ttl", elapsed: 48 * time.Hour, want: false},
		{name: "49 hours", elapsed: 49 * time.Hour, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backing := kv.NewMemory()
			c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
			m := New(backing, Options{Now: c.Now})

			if _, err := m.Save(ctx, soupForm()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			c.now = c.now.Add(tt.elapsed)

			_, ok, err := m.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Load() found = %v, want %v", ok, tt.want)
			}
			_, err = backing.Get(ctx, Key)
			if stored := !errors.Is(err, kv.ErrNotFound); stored != tt.want {
				t.Errorf("draft stored = %v after Load, want %v", stored, tt.want)
			}
		})
	}
}

func TestLoad_ConfigurableTTL(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Unix(0, 0)}
	m := New(kv.NewMemory(), Options{TTL: time.Hour, Now: c.Now})
	if _, err := m.Save(ctx, soupForm()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	c.now = c.now.Add(2 * time.Hour)
	if _, ok, _ := m.Load(ctx); ok {
		t.Error("draft older than the configured TTL was returned")
	}
}

func TestSave_RejectsEmptyForm(t *testing.T) {
	m := New(kv.NewMemory(), Options{})
	form := recipe.Form{Title: "  ", Ingredients: []string{"", " "}}
	if _, err := m.Save(context.Background(), form); !errors.Is(err, ErrEmptyForm) {
		t.Errorf("Save() error = %v, want ErrEmptyForm", err)
	}
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()
	m := New(kv.NewMemory(), Options{})
	if _, err := m.Save(ctx, soupForm()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := m.Save(ctx, recipe.Form{Description: "second thoughts"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err := m.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Data.Description != "second thoughts" || got.Data.Title != "" {
		t.Errorf("Load() = %+v, want the second draft", got.Data)
	}
}

func TestLoad_CorruptIsDeleted(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	if err := backing.Set(ctx, "p1/"+Key, []byte("]]")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := New(backing, Options{}).WithProfile("p1")

	if _, ok, err := m.Load(ctx); ok || err != nil {
		t.Fatalf("Load() = %v, %v; want none", ok, err)
	}
	if _, err := backing.Get(ctx, "p1/"+Key); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("corrupt draft not deleted: %v", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := New(kv.NewMemory(), Options{})
	if _, err := m.Save(ctx, soupForm()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := m.Load(ctx); ok {
		t.Error("draft survived Clear")
	}
	if err := m.Clear(ctx); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestSave_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockKV := kvmock.NewMockStore(ctrl)
	mockKV.EXPECT().
		Set(gomock.Any(), Key, gomock.Any()).
		Return(kv.ErrQuotaExceeded)

	_, err := New(mockKV, Options{}).Save(context.Background(), soupForm())
	if !errors.Is(err, kv.ErrQuotaExceeded) {
		t.Errorf("Save() error = %v, want ErrQuotaExceeded", err)
	}
}
