package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

// RedisFeed listens on the channel the redis notification log publishes to
type RedisFeed struct {
	rdb     *redis.Client
	channel string

	mu     sync.Mutex
	pubsub *redis.PubSub
}

// NewRedisFeed creates a feed for channel. Nothing connects until Listen.
func NewRedisFeed(redisOpts *redis.Options, channel string) (*RedisFeed, error) {
	if channel == "" {
		return nil, fmt.Errorf("events channel cannot be empty")
	}
	return &RedisFeed{rdb: redis.NewClient(redisOpts), channel: channel}, nil
}

// Listen subscribes to the channel. Payloads that do not decode are
// logged and skipped.
func (f *RedisFeed) Listen(ctx context.Context) (<-chan models.Notification, error) {
	pubsub := f.rdb.Subscribe(ctx, f.channel)
	// Wait for the subscription confirmation so no message is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}

	f.mu.Lock()
	f.pubsub = pubsub
	f.mu.Unlock()

	out := make(chan models.Notification)
	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var n models.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					slog.Warn("skipping undecodable notification event",
						"channel", msg.Channel,
						"error", err)
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close unsubscribes and closes the connection
func (f *RedisFeed) Close() error {
	f.mu.Lock()
	pubsub := f.pubsub
	f.pubsub = nil
	f.mu.Unlock()

	if pubsub != nil {
		_ = pubsub.Close()
	}
	return f.rdb.Close()
}
