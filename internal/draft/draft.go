// Package draft keeps at most one in-progress authoring form per profile,
// recoverable until it expires.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-dz/recipehub/internal/kv"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
)

// Key is the persisted key of the draft.
const Key = "tempRecipeData"

// DefaultTTL is how long a draft stays recoverable.
const DefaultTTL = 48 * time.Hour

var ErrEmptyForm = errors.New("draft form is empty")

// Draft is a saved form and the moment it was saved, in Unix milliseconds.
type Draft struct {
	Data      recipe.Form `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Age returns how old the draft is at now.
func (d Draft) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(d.Timestamp))
}

type Options struct {
	TTL    time.Duration
	Logger *slog.Logger
	Now    func() time.Time
}

type Manager struct {
	kv     kv.Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
	mu     *sync.Mutex

	profile string
}

func New(store kv.Store, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.NullLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		kv:     store,
		ttl:    opts.TTL,
		logger: opts.Logger,
		now:    opts.Now,
		mu:     &sync.Mutex{},
	}
}

// WithProfile returns a Manager for the draft of profile.
func (m *Manager) WithProfile(profile string) *Manager {
	scoped := *m
	scoped.profile = profile
	return &scoped
}

func (m *Manager) key() string {
	if m.profile == "" {
		return Key
	}
	return m.profile + "/" + Key
}

// Save overwrites any prior draft with form, stamped with the current time.
func (m *Manager) Save(ctx context.Context, form recipe.Form) (Draft, error) {
	if form.IsEmpty() {
		return Draft{}, ErrEmptyForm
	}
	d := Draft{Data: form, Timestamp: m.now().UnixMilli()}
	raw, err := json.Marshal(d)
	if err != nil {
		return Draft{}, fmt.Errorf("encoding draft: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.kv.Set(ctx, m.key(), raw); err != nil {
		return Draft{}, fmt.Errorf("saving draft: %w", err)
	}
	return d, nil
}

// Load returns the draft if it is younger than the TTL. Expired and
// corrupt drafts are deleted and reported as absent.
func (m *Manager) Load(ctx context.Context) (Draft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.kv.Get(ctx, m.key())
	if errors.Is(err, kv.ErrNotFound) {
		return Draft{}, false, nil
	} else if err != nil {
		return Draft{}, false, fmt.Errorf("loading draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		m.logger.WarnContext(ctx, "discarding corrupt draft", slog.Any("error", err))
		return Draft{}, false, m.delete(ctx)
	}
	if age := d.Age(m.now()); age >= m.ttl {
		m.logger.DebugContext(ctx, "discarding expired draft", slog.Duration("age", age))
		return Draft{}, false, m.delete(ctx)
	}
	return d, true, nil
}

// Clear discards the draft.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delete(ctx)
}

func (m *Manager) delete(ctx context.Context) error {
	if err := m.kv.Delete(ctx, m.key()); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}
