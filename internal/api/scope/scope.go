// Package scope resolves what a request acts on: its environment, its
// profile and tab, and the stores bound to them.
package scope

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/token"
	"github.com/matt-dz/recipehub/internal/authoring"
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/detail"
	"github.com/matt-dz/recipehub/internal/draft"
	"github.com/matt-dz/recipehub/internal/env"
	"github.com/matt-dz/recipehub/internal/feed"
	mJson "github.com/matt-dz/recipehub/internal/json"
	"github.com/matt-dz/recipehub/internal/kv"
)

// SaveWarning accompanies a change that was applied but not persisted.
const SaveWarning = "Your change may not survive a reload."

// MaxBodyBytes bounds request bodies. Records may embed images.
const MaxBodyBytes = 8 << 20

var ErrInvalidID = errors.New("invalid recipe id")

type Scope struct {
	Env       *env.Env
	RequestID string
	Profile   string
	Tab       string
}

func FromRequest(r *http.Request) (Scope, error) {
	ctx := r.Context()
	profile, err := token.ProfileFromCtx(ctx)
	if err != nil {
		return Scope{}, err
	}
	return Scope{
		Env:       env.EnvFromCtx(ctx),
		RequestID: requestid.ExtractRequestID(ctx),
		Profile:   profile,
		Tab:       token.TabFromCtx(ctx),
	}, nil
}

func (s Scope) Collections() *collection.Store {
	return s.Env.Collections.WithProfile(s.Profile, s.Tab)
}

func (s Scope) Drafts() *draft.Manager {
	return s.Env.Drafts.WithProfile(s.Profile)
}

func (s Scope) Authoring() *authoring.Service {
	return authoring.New(s.Collections(), s.Drafts(), s.Env.Logger)
}

func (s Scope) Detail() *detail.Resolver {
	return detail.New(s.Env.API, s.Collections(), s.Env.Logger)
}

// Feed returns the tab's feed. A request without a tab gets a feed of its
// own; release closes it.
func (s Scope) Feed() (f *feed.Feed, release func()) {
	if s.Tab == "" {
		f = feed.New(s.Env.API, feed.Options{Logger: s.Env.Logger})
		return f, f.Close
	}
	return s.Env.Feeds.For(s.Profile, s.Tab), func() {}
}

// Warning returns SaveWarning when err reports a change that was kept in
// memory but not written.
func Warning(err error) string {
	if errors.Is(err, collection.ErrSaveFailed) || errors.Is(err, kv.ErrQuotaExceeded) {
		return SaveWarning
	}
	return ""
}

// DecodeBody decodes the request body into dst.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	return mJson.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes), dst)
}

// IDParam parses the URL parameter name as a recipe id.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// IntQuery parses the query parameter name, returning def when it is absent.
func IntQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}
