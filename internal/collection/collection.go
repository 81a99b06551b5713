// Package collection persists the favorites, liked and created recipe
// collections of a browser profile and announces every change.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/matt-dz/recipehub/internal/broadcast"
	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
)

// Name is the persisted key of a collection.
type Name string

const (
	Favorites Name = "favorites"
	Liked     Name = "likedRecipes"
	Created   Name = "createdRecipes"
)

// Names lists every collection in display order.
var Names = []Name{Favorites, Liked, Created}

var (
	// ErrSaveFailed is returned alongside the intended collection when it
	// could not be persisted. The change may not survive a reload.
	ErrSaveFailed        = errors.New("save failed")
	ErrUnknownCollection = errors.New("unknown collection")
)

// ParseName accepts a persisted key such as "likedRecipes".
func ParseName(s string) (Name, error) {
	for _, name := range Names {
		if strings.EqualFold(s, string(name)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// Collection is an ordered sequence of records, unique by id.
type Collection []recipe.Record

func (c Collection) index(id int64) int {
	return slices.IndexFunc(c, func(r recipe.Record) bool { return r.ID == id })
}

// Contains reports whether a record with id is present.
func (c Collection) Contains(id int64) bool {
	return c.index(id) >= 0
}

// IDs returns the ids in order.
func (c Collection) IDs() []int64 {
	ids := make([]int64, len(c))
	for i, r := range c {
		ids[i] = r.ID
	}
	return ids
}

// Options configures a Store. Zero values pick defaults.
type Options struct {
	Notifier broadcast.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Store owns the collections of one profile. The zero profile maps keys
// directly onto the backing store.
type Store struct {
	kv       kv.Store
	notifier broadcast.Notifier
	logger   *slog.Logger
	now      func() time.Time
	locks    *keyedMutex

	profile string
	origin  string
}

func New(store kv.Store, opts Options) *Store {
	if opts.Notifier == nil {
		opts.Notifier = broadcast.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = log.NullLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		kv:       store,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		now:      opts.Now,
		locks:    newKeyedMutex(),
	}
}

// WithProfile returns a Store scoped to profile whose changes are
// attributed to the origin tab. The lock table is shared.
func (s *Store) WithProfile(profile, origin string) *Store {
	scoped := *s
	scoped.profile = profile
	scoped.origin = origin
	return &scoped
}

// Profile returns the profile the store is scoped to.
func (s *Store) Profile() string {
	return s.profile
}

// Key returns the backing key of a collection for this profile.
func (s *Store) Key(name Name) string {
	if s.profile == "" {
		return string(name)
	}
	return s.profile + "/" + string(name)
}

// Load reads a collection. A missing or unparsable value is an empty
// collection.
func (s *Store) Load(ctx context.Context, name Name) (Collection, error) {
	raw, err := s.kv.Get(ctx, s.Key(name))
	if errors.Is(err, kv.ErrNotFound) {
		return Collection{}, nil
	} else if err != nil {
		return Collection{}, fmt.Errorf("loading %s: %w", name, err)
	}

	var c Collection
	if err := json.Unmarshal(raw, &c); err != nil {
		s.logger.WarnContext(ctx, "treating corrupt collection as empty",
			slog.String("collection", string(name)), slog.Any("error", err))
		return Collection{}, nil
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// Toggle removes the record with r's id, or appends r when absent.
func (s *Store) Toggle(ctx context.Context, name Name, r recipe.Record) (Collection, error) {
	return s.mutate(ctx, name, func(c Collection) (Collection, error) {
		if i := c.index(r.ID); i >= 0 {
			return slices.Delete(c, i, i+1), nil
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		return append(c, r), nil
	})
}

// Remove drops the record with id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, name Name, id int64) (Collection, error) {
	return s.mutate(ctx, name, func(c Collection) (Collection, error) {
		if i := c.index(id); i >= 0 {
			return slices.Delete(c, i, i+1), nil
		}
		return c, nil
	})
}

// UpsertCreated replaces the created recipe with r's id in place, or
// appends r under a freshly minted id.
func (s *Store) UpsertCreated(ctx context.Context, r recipe.Record) (Collection, error) {
	r.Source = recipe.SourceUser
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, Created, func(c Collection) (Collection, error) {
		if i := c.index(r.ID); i >= 0 && r.ID != 0 {
			c[i] = r
			return c, nil
		}
		r.ID = s.mintID(c)
		return append(c, r), nil
	})
}

// mintID derives an id from the clock, bumped until unique in c.
func (s *Store) mintID(c Collection) int64 {
	id := s.now().UnixMilli()
	for c.Contains(id) {
		id++
	}
	return id
}

// Contains reports whether the named collection holds id.
func (s *Store) Contains(ctx context.Context, name Name, id int64) (bool, error) {
	c, err := s.Load(ctx, name)
	if err != nil {
		return false, err
	}
	return c.Contains(id), nil
}

// Find returns the record with id from the named collection.
func (s *Store) Find(ctx context.Context, name Name, id int64) (recipe.Record, bool, error) {
	c, err := s.Load(ctx, name)
	if err != nil {
		return recipe.Record{}, false, err
	}
	if i := c.index(id); i >= 0 {
		return c[i], true, nil
	}
	return recipe.Record{}, false, nil
}

// mutate runs a read-modify-write cycle under the key's lock. When the
// write fails the intended collection is still returned, with an error
// wrapping ErrSaveFailed.
func (s *Store) mutate(ctx context.Context, name Name, fn func(Collection) (Collection, error)) (Collection, error) {
	key := s.Key(name)
	unlock := s.locks.lock(key)
	defer unlock()

	current, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return next, fmt.Errorf("%w: encoding %s: %w", ErrSaveFailed, name, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.logger.WarnContext(ctx, "collection not persisted",
			slog.String("collection", string(name)), slog.Any("error", err))
		return next, fmt.Errorf("%w: %s: %w", ErrSaveFailed, name, err)
	}

	change := broadcast.Change{Profile: s.profile, Key: string(name), Origin: s.origin}
	if err := s.notifier.Publish(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "change not broadcast",
			slog.String("collection", string(name)), slog.Any("error", err))
	}
	return next, nil
}
