package feed

import (
	"sync"
	"time"
)

// DefaultIdleTimeout is how long a tab's feed outlives its last request.
const DefaultIdleTimeout = 30 * time.Minute

type tabKey struct {
	profile string
	tab     string
}

type tabFeed struct {
	feed *Feed
	used time.Time
}

// Registry keeps one Feed per tab so the category and search a tab picked
// carry over to its next request. Feeds idle longer than the idle timeout
// are closed and forgotten.
type Registry struct {
	source Source
	opts   Options
	idle   time.Duration
	now    func() time.Time

	mu    sync.Mutex
	feeds map[tabKey]*tabFeed
}

func NewRegistry(source Source, opts Options, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Registry{
		source: source,
		opts:   opts,
		idle:   idle,
		now:    time.Now,
		feeds:  make(map[tabKey]*tabFeed),
	}
}

// For returns the feed of tab, creating it on first use.
func (r *Registry) For(profile, tab string) *Feed {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	key := tabKey{profile: profile, tab: tab}
	entry, ok := r.feeds[key]
	if !ok {
		entry = &tabFeed{feed: New(r.source, r.opts)}
		r.feeds[key] = entry
	}
	entry.used = now
	return entry.feed
}

// Drop closes and forgets the feed of tab. Requests still running on it
// get their results discarded.
func (r *Registry) Drop(profile, tab string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tabKey{profile: profile, tab: tab}
	if entry, ok := r.feeds[key]; ok {
		entry.feed.Close()
		delete(r.feeds, key)
	}
}

// sweep closes idle feeds. Callers hold r.mu.
func (r *Registry) sweep(now time.Time) {
	for key, entry := range r.feeds {
		if now.Sub(entry.used) > r.idle {
			entry.feed.Close()
			delete(r.feeds, key)
		}
	}
}
