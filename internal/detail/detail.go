// Package detail resolves the recipe shown on the detail view, from the
// user's own recipes or from the recipe API.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

const (
	NotFoundMessage = "Recipe not found"
	FailedMessage   = "Failed to load recipe details"
)

var (
	ErrNotFound   = errors.New("recipe not found")
	ErrLoadFailed = errors.New("failed to load recipe details")
)

// Fetcher is the part of the recipe API the detail view reads.
type Fetcher interface {
	GetByID(ctx context.Context, id int64) (recipe.Record, error)
	GetInstructions(ctx context.Context, id int64) ([]recipe.Step, error)
}

// Collections is the read side of a profile's collection store.
type Collections interface {
	Find(ctx context.Context, name collection.Name, id int64) (recipe.Record, bool, error)
	Contains(ctx context.Context, name collection.Name, id int64) (bool, error)
}

type Result struct {
	Recipe   recipe.Display `json:"recipe"`
	Favorite bool           `json:"favorite"`
	Liked    bool           `json:"liked"`
	Created  bool           `json:"created"`
}

type Resolver struct {
	api         Fetcher
	collections Collections
	logger      *slog.Logger
}

func New(api Fetcher, collections Collections, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = log.NullLogger()
	}
	return &Resolver{api: api, collections: collections, logger: logger}
}

// Message returns the text the detail view shows for err.
func Message(err error) string {
	if errors.Is(err, ErrNotFound) {
		return NotFoundMessage
	}
	return FailedMessage
}

// Resolve returns the normalized recipe with id. User-authored recipes
// are served from the created collection without calling the API.
func (r *Resolver) Resolve(ctx context.Context, id int64) (Result, error) {
	if id <= 0 {
		return Result{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	record, created, err := r.collections.Find(ctx, collection.Created, id)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if !created {
		record, err = r.fetch(ctx, id)
		if err != nil {
			return Result{}, err
		}
	}

	result := Result{Recipe: recipe.Normalize(record), Created: created}
	if result.Favorite, err = r.collections.Contains(ctx, collection.Favorites, id); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if result.Liked, err = r.collections.Contains(ctx, collection.Liked, id); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return result, nil
}

// fetch loads details and instructions concurrently.
func (r *Resolver) fetch(ctx context.Context, id int64) (recipe.Record, error) {
	var (
		record recipe.Record
		steps  []recipe.Step
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = r.api.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		steps, err = r.api.GetInstructions(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.ErrorContext(ctx, "loading recipe details", slog.Int64("id", id), slog.Any("error", err))
		if errors.Is(err, spoonacular.ErrNotFound) {
			return recipe.Record{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return recipe.Record{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if len(steps) > 0 {
		record.Steps = steps
	}
	return record, nil
}
