// Package events streams collection changes made in other tabs of the
// same profile as server-sent events.
package events

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	apiError "github.com/matt-dz/recipehub/internal/api/error"
	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/scope"
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/env"
	"github.com/matt-dz/recipehub/internal/tabsync"
)

const (
	CollectionEvent = "collection"
	HeartbeatPeriod = 25 * time.Second
)

type CollectionPayload struct {
	Name    collection.Name       `json:"name"`
	Recipes collection.Collection `json:"recipes"`
}

// pending coalesces changes so a slow client only sees the latest copy
// of each collection.
type pending struct {
	mu      sync.Mutex
	changed map[collection.Name]collection.Collection
	signal  chan struct{}
}

func newPending() *pending {
	return &pending{
		changed: make(map[collection.Name]collection.Collection),
		signal:  make(chan struct{}, 1),
	}
}

func (p *pending) put(name collection.Name, c collection.Collection) {
	p.mu.Lock()
	p.changed[name] = c
	p.mu.Unlock()
	select {
	case p.signal <- struct{}{}:
	default:
	}
}

func (p *pending) take() map[collection.Name]collection.Collection {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.changed
	p.changed = make(map[collection.Name]collection.Collection)
	return out
}

func writeEvent(w io.Writer, name collection.Name, c collection.Collection) error {
	if c == nil {
		c = collection.Collection{}
	}
	data, err := json.Marshal(CollectionPayload{Name: name, Recipes: c})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", CollectionEvent, data)
	return err
}

// StreamEvents sends the current collections, then every collection another
// tab of the profile changes, until the client disconnects. The tab comes
// from the tab query parameter.
//
//	@Summary	Stream collection changes.
//	@Tags		Events
//
//	@Produce	text/event-stream
//	@Param		tab	query	string	false	"Tab id"
//
//	@Success	200
//	@Router		/api/events [GET]
func StreamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := scope.FromRequest(r)
	if err != nil {
		env.EnvFromCtx(ctx).Logger.ErrorContext(ctx, "failed to resolve scope", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}
	logger := s.Env.Logger

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}

	tab := s.Tab
	if tab == "" {
		// an anonymous stream hears every change
		tab = s.RequestID
	}
	changes := newPending()
	syncer, err := tabsync.New(ctx, s.Env.Notifier, s.Collections(), s.Profile, tab, collection.Names, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load collections", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	defer syncer.Close()
	syncer.OnChange(changes.put)
	if s.Tab != "" {
		// the stream of a tab ends when the tab goes away
		defer s.Env.Feeds.Drop(s.Profile, s.Tab)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for _, name := range collection.Names {
		if err := writeEvent(w, name, syncer.Snapshot(name)); err != nil {
			logger.InfoContext(ctx, "event stream closed", slog.Any("error", err))
			return
		}
	}
	flusher.Flush()
	logger.DebugContext(ctx, "event stream established")

	heartbeat := time.NewTicker(HeartbeatPeriod)
	defer heartbeat.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.DebugContext(ctx, "event stream closed by client")
			return
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
		case <-changes.signal:
			batch := changes.take()
			for _, name := range collection.Names {
				c, ok := batch[name]
				if !ok {
					continue
				}
				if err := writeEvent(w, name, c); err != nil {
					logger.InfoContext(ctx, "event stream closed", slog.Any("error", err))
					return
				}
			}
		}
		flusher.Flush()
	}
}
