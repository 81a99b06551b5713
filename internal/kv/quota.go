package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Compile-time interface check.
var _ Store = (*Quota)(nil)

// Quota caps the bytes stored under each top-level key segment (one browser
// profile), the way a browser caps local storage per origin. When the
// underlying store is a Sizer, a profile's total is read with one scan the
// first time the profile is touched. Otherwise sizes are learned key by key.
//
// Totals are kept per process. Instances sharing a backend each start from
// their own scan and then count only their own writes.
type Quota struct {
	next  Store
	limit int64

	mu      sync.Mutex
	sizes   map[string]int64
	totals  map[string]int64
	scanned map[string]bool
}

func NewQuota(next Store, limit int64) *Quota {
	return &Quota{
		next:    next,
		limit:   limit,
		sizes:   make(map[string]int64),
		totals:  make(map[string]int64),
		scanned: make(map[string]bool),
	}
}

func namespaceOf(key string) string {
	ns, _, _ := strings.Cut(key, "/")
	return ns
}

// loadNamespace seeds the total of ns from the underlying store once.
// Callers hold q.mu.
func (q *Quota) loadNamespace(ctx context.Context, ns string) error {
	if _, ok := q.scanned[ns]; ok {
		return nil
	}
	sizer, ok := q.next.(Sizer)
	if !ok {
		q.scanned[ns] = false
		return nil
	}
	total, err := sizer.Usage(ctx, ns)
	if err != nil {
		return err
	}
	q.totals[ns] = total
	q.scanned[ns] = true
	return nil
}

// size returns the known size of key, loading it on first use.
// Callers hold q.mu.
func (q *Quota) size(ctx context.Context, key string) (int64, error) {
	ns := namespaceOf(key)
	if err := q.loadNamespace(ctx, ns); err != nil {
		return 0, err
	}
	if n, ok := q.sizes[key]; ok {
		return n, nil
	}
	value, err := q.next.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		value = nil
	} else if err != nil {
		return 0, err
	}
	n := int64(len(value))
	q.sizes[key] = n
	if !q.scanned[ns] {
		q.totals[ns] += n
	}
	return n, nil
}

func (q *Quota) Get(ctx context.Context, key string) ([]byte, error) {
	return q.next.Get(ctx, key)
}

func (q *Quota) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	old, err := q.size(ctx, key)
	if err != nil {
		return fmt.Errorf("sizing value: %w", err)
	}
	ns := namespaceOf(key)
	next := q.totals[ns] - old + int64(len(value))
	if next > q.limit {
		return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, next, q.limit)
	}
	if err := q.next.Set(ctx, key, value); err != nil {
		return err
	}
	q.sizes[key] = int64(len(value))
	q.totals[ns] = next
	return nil
}

func (q *Quota) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	old, err := q.size(ctx, key)
	if err != nil {
		return fmt.Errorf("sizing value: %w", err)
	}
	if err := q.next.Delete(ctx, key); err != nil {
		return err
	}
	q.totals[namespaceOf(key)] -= old
	q.sizes[key] = 0
	return nil
}
