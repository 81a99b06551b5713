package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/recipe"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

type fakeAPI struct {
	record recipe.Record
	steps  []recipe.Step
	err    error
	calls  int
}

func (f *fakeAPI) GetByID(context.Context, int64) (recipe.Record, error) {
	f.calls++
	return f.record, f.err
}

func (f *fakeAPI) GetInstructions(context.Context, int64) ([]recipe.Step, error) {
	return f.steps, f.err
}

func newStore() *collection.Store {
	return collection.New(kv.NewMemory(), collection.Options{
		Now: func() time.Time { return time.UnixMilli(1_700_000_000_000) },
	}).WithProfile("p1", "tab-a")
}

func TestResolve_CreatedRecipeSkipsAPI(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	created, err := store.UpsertCreated(ctx, recipe.Record{
		Title:        "Soup",
		Ingredients:  []string{"Water"},
		Instructions: "Boil it",
	})
	if err != nil {
		t.Fatalf("UpsertCreated() error = %v", err)
	}
	id := created[0].ID
	if _, err := store.Toggle(ctx, collection.Liked, created[0]); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	api := &fakeAPI{err: errors.New("must not be called")}
	got, err := New(api, store, nil).Resolve(ctx, id)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if api.calls != 0 {
		t.Errorf("API called %d times", api.calls)
	}
	if got.Recipe.Title != "Soup" || len(got.Recipe.Steps) != 1 || got.Recipe.Steps[0].String() != "1: Boil it" {
		t.Errorf("Recipe = %+v", got.Recipe)
	}
	if !got.Created || !got.Liked || got.Favorite {
		t.Errorf("flags = created %v liked %v favorite %v", got.Created, got.Liked, got.Favorite)
	}
}

func TestResolve_FetchesExternal(t *testing.T) {
	api := &fakeAPI{
		record: recipe.Record{ID: 5, Title: "Ramen", Source: recipe.SourceExternal, Image: "https://img.example/5.jpg"},
		steps:  []recipe.Step{{Number: 1, Step: "Boil"}, {Number: 2, Step: "Slurp"}},
	}
	got, err := New(api, newStore(), nil).Resolve(context.Background(), 5)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got.Recipe.Steps) != 2 || got.Recipe.Image != "https://img.example/5.jpg" {
		t.Errorf("Recipe = %+v", got.Recipe)
	}
}

func TestResolve_Failures(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		err         error
		wantErr     error
		wantMessage string
	}{
		{
			name:        "not found",
			id:          5,
			err:         &spoonacular.Error{Op: "information", Status: 404, Err: spoonacular.ErrNotFound},
			wantErr:     ErrNotFound,
			wantMessage: "Recipe not found",
		},
		{
			name:        "invalid id",
			id:          0,
			wantErr:     ErrNotFound,
			wantMessage: "Recipe not found",
		},
		{
			name:        "quota",
			id:          5,
			err:         &spoonacular.Error{Op: "information", Status: 402, Err: spoonacular.ErrQuotaExceeded},
			wantErr:     ErrLoadFailed,
			wantMessage: "Failed to load recipe details",
		},
		{
			name:        "malformed",
			id:          5,
			err:         &spoonacular.Error{Op: "information", Err: spoonacular.ErrMalformedResponse},
			wantErr:     ErrLoadFailed,
			wantMessage: "Failed to load recipe details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeAPI{err: tt.err}, newStore(), nil).Resolve(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			if got := Message(err); got != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}
