package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel changes travel on.
const DefaultChannel = "recipehub:changes"

// Redis publishes changes on a Redis channel so every server instance
// sharing the storage backend sees them. Local subscribers receive
// changes from the channel, including the ones this instance published.
type Redis struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger

	pubsub *redis.PubSub
	local  *Memory
	done   chan struct{}
}

// NewRedis subscribes to channel and starts relaying its messages. Call
// Close to stop.
func NewRedis(ctx context.Context, client redis.UniversalClient, channel string, logger *slog.Logger) (*Redis, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	pubsub := client.Subscribe(ctx, channel)
	// wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", channel, err)
	}

	r := &Redis{
		client:  client,
		channel: channel,
		logger:  logger,
		pubsub:  pubsub,
		local:   NewMemory(),
		done:    make(chan struct{}),
	}
	go r.relay()
	return r, nil
}

func (r *Redis) relay() {
	defer close(r.done)
	for msg := range r.pubsub.Channel() {
		var change Change
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			r.logger.Warn("dropping malformed change", slog.String("channel", msg.Channel), slog.Any("error", err))
			continue
		}
		r.local.deliver(change)
	}
}

func (r *Redis) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing change: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(fn func(Change)) func() {
	return r.local.Subscribe(fn)
}

// Close ends the subscription and waits for the relay to drain.
func (r *Redis) Close() error {
	err := r.pubsub.Close()
	<-r.done
	return err
}
