// Package kv is the key-value persistence boundary the collection store and
// the draft manager are written against. Values are opaque serialized bytes.
package kv

//go:generate mockgen -destination=kvmock/mock_store.go -package=kvmock . Store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrInvalidKey    = errors.New("invalid key")
)

// Store persists values by key. Implementations must be safe for
// concurrent use. Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Sizer is implemented by stores that can total the bytes held under
// namespace + "/".
type Sizer interface {
	Usage(ctx context.Context, namespace string) (int64, error)
}

// ValidateKey rejects keys that cannot be mapped safely onto every backend.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return fmt.Errorf("%w: %q has a leading or trailing slash", ErrInvalidKey, key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q has an empty or relative segment", ErrInvalidKey, key)
		}
	}
	return nil
}

type prefixed struct {
	next   Store
	prefix string
}

// WithPrefix namespaces every key of next under prefix + "/".
func WithPrefix(next Store, prefix string) Store {
	return prefixed{next: next, prefix: strings.Trim(prefix, "/") + "/"}
}

func (p prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p prefixed) Delete(ctx context.Context, key string) error {
	return p.next.Delete(ctx, p.prefix+key)
}
