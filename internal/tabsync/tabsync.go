// Package tabsync keeps one tab's copy of its profile's collections
// current when another tab changes them.
package tabsync

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/matt-dz/recipehub/internal/broadcast"
	"github.com/matt-dz/recipehub/internal/collection"
)

// Loader reads a collection for the synchronizer's profile.
type Loader interface {
	Load(ctx context.Context, name collection.Name) (collection.Collection, error)
}

// Synchronizer holds the in-memory collections of a single tab.
type Synchronizer struct {
	profile string
	tab     string
	watched []collection.Name
	loader  Loader
	logger  *slog.Logger

	mu        sync.Mutex
	snapshots map[collection.Name]collection.Collection
	onChange  func(collection.Name, collection.Collection)
	// set while New runs; changes heard meanwhile are reloaded after
	// the initial read
	starting bool
	missed   map[collection.Name]struct{}

	unsubscribe func()
}

// New subscribes to notifier, then loads the watched collections. Changes
// heard during the initial load are read again afterwards. Call Close when
// the tab goes away.
func New(
	ctx context.Context,
	notifier broadcast.Notifier,
	loader Loader,
	profile, tab string,
	watched []collection.Name,
	logger *slog.Logger,
) (*Synchronizer, error) {
	s := &Synchronizer{
		profile:   profile,
		tab:       tab,
		watched:   slices.Clone(watched),
		loader:    loader,
		logger:    logger,
		snapshots: make(map[collection.Name]collection.Collection, len(watched)),
		starting:  true,
		missed:    make(map[collection.Name]struct{}),
	}
	s.unsubscribe = notifier.Subscribe(s.handle)

	for _, name := range watched {
		c, err := loader.Load(ctx, name)
		if err != nil {
			s.unsubscribe()
			return nil, err
		}
		s.mu.Lock()
		s.snapshots[name] = c
		s.mu.Unlock()
	}

	s.mu.Lock()
	missed := s.missed
	s.starting = false
	s.missed = nil
	s.mu.Unlock()

	for _, name := range s.watched {
		if _, ok := missed[name]; !ok {
			continue
		}
		c, err := loader.Load(ctx, name)
		if err != nil {
			s.unsubscribe()
			return nil, err
		}
		s.mu.Lock()
		s.snapshots[name] = c
		s.mu.Unlock()
	}
	return s, nil
}

// OnChange registers fn to run after a collection is reloaded because
// another tab changed it.
func (s *Synchronizer) OnChange(fn func(collection.Name, collection.Collection)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Synchronizer) handle(change broadcast.Change) {
	if change.Profile != s.profile || change.Origin == s.tab {
		return
	}
	name := collection.Name(change.Key)
	if !slices.Contains(s.watched, name) {
		return
	}

	s.mu.Lock()
	if s.starting {
		s.missed[name] = struct{}{}
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	c, err := s.loader.Load(context.Background(), name)
	if err != nil {
		s.logger.Warn("reloading changed collection",
			slog.String("tab", s.tab), slog.String("collection", change.Key), slog.Any("error", err))
		return
	}

	s.mu.Lock()
	s.snapshots[name] = c
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(name, c)
	}
}

// Snapshot returns the tab's copy of name.
func (s *Synchronizer) Snapshot(name collection.Name) collection.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.snapshots[name])
}

func (s *Synchronizer) Close() {
	s.unsubscribe()
}
