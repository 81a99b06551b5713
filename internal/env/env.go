// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-dz/recipehub/internal/broadcast"
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/config"
	"github.com/matt-dz/recipehub/internal/detail"
	"github.com/matt-dz/recipehub/internal/draft"
	"github.com/matt-dz/recipehub/internal/feed"
	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

// RecipeAPI is the external recipe source the handlers read from.
type RecipeAPI interface {
	feed.Source
	detail.Fetcher
	Suggest(ctx context.Context, prefix string) ([]spoonacular.Suggestion, error)
	SearchByIngredients(ctx context.Context, ingredients []string) ([]recipe.Record, error)
}

var _ RecipeAPI = (*spoonacular.Client)(nil)

type Env struct {
	Logger      *slog.Logger
	Config      *config.Config
	Storage     kv.Store
	Collections *collection.Store
	Drafts      *draft.Manager
	Feeds       *feed.Registry
	Notifier    broadcast.Notifier
	API         RecipeAPI
	Now         func() time.Time

	mu      sync.Mutex
	closers []func() error
}

type envKeyType struct{}

var envKey envKeyType

// New wires the profile-independent stores on top of storage.
func New(logger *slog.Logger, conf *config.Config, storage kv.Store, notifier broadcast.Notifier, api RecipeAPI) *Env {
	if logger == nil {
		logger = log.NullLogger()
	}
	if notifier == nil {
		notifier = broadcast.NewMemory()
	}
	ttl := draft.DefaultTTL
	if conf != nil && conf.Draft.TTL > 0 {
		ttl = conf.Draft.TTL
	}

	return &Env{
		Logger:  logger,
		Config:  conf,
		Storage: storage,
		Collections: collection.New(storage, collection.Options{
			Notifier: notifier,
			Logger:   logger,
		}),
		Drafts: draft.New(storage, draft.Options{
			TTL:    ttl,
			Logger: logger,
		}),
		Feeds:    feed.NewRegistry(api, feed.Options{Logger: logger}, feed.DefaultIdleTimeout),
		Notifier: notifier,
		API:      api,
		Now:      time.Now,
	}
}

// Null returns an Env backed by memory with nothing logged.
func Null() *Env {
	return New(nil, &config.Config{}, kv.NewMemory(), nil, nil)
}

// OnClose registers fn to run when the Env is closed. Closers run in
// reverse order of registration.
func (e *Env) OnClose(fn func() error) {
	e.mu.Lock()
	e.closers = append(e.closers, fn)
	e.mu.Unlock()
}

func (e *Env) Close() error {
	e.mu.Lock()
	closers := e.closers
	e.closers = nil
	e.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsProd reports whether the server runs in production mode.
func (e *Env) IsProd() bool {
	return e.Config != nil && e.Config.Env == config.EnvProd
}

func WithCtx(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey, env)
}

// EnvFromCtx returns the Env stored in ctx, or Null when there is none.
func EnvFromCtx(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey).(*Env); ok {
		return env
	}
	return Null()
}
