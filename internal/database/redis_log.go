package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// appendScript pushes and publishes a notification once per ID.
// KEYS: list, seen-ID set. ARGV: id, payload, channel.
var appendScript = redis.NewScript(`
if redis.call("SADD", KEYS[2], ARGV[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[1], ARGV[2])
redis.call("PUBLISH", ARGV[3], ARGV[2])
return 1
`)

// RedisLog appends notifications as JSON to a Redis list and announces each
// one on the <key>:events channel. Appends are idempotent per notification
// ID, so a retry after an ambiguous failure never logs twice.
type RedisLog struct {
	rdb *redis.Client
	key string
}

// NewRedisLog creates a log writing to key
func NewRedisLog(redisOpts *redis.Options, key string) (*RedisLog, error) {
	if key == "" {
		return nil, fmt.Errorf("redis key cannot be empty")
	}
	return &RedisLog{rdb: redis.NewClient(redisOpts), key: key}, nil
}

// EventsChannel is where each appended notification is published
func (l *RedisLog) EventsChannel() string {
	return l.key + ":events"
}

// Ping verifies Redis connectivity
func (l *RedisLog) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *RedisLog) seenKey() string {
	return l.key + ":ids"
}

// Append pushes the notification and publishes it atomically. An ID that
// was already appended is skipped.
func (l *RedisLog) Append(ctx context.Context, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	keys := []string{l.key, l.seenKey()}
	err = appendScript.Run(ctx, l.rdb, keys, n.ID.String(), data, l.EventsChannel()).Err()
	if err != nil {
		return fmt.Errorf("failed to append notification %s: %w", n.ID, err)
	}
	return nil
}

// Recent returns up to limit logged notifications, most recent first.
// A limit of zero or less returns everything.
func (l *RedisLog) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := l.rdb.LRange(ctx, l.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notification log: %w", err)
	}

	out := make([]models.Notification, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var n models.Notification
		if err := json.Unmarshal([]byte(raw[i]), &n); err != nil {
			return nil, fmt.Errorf("corrupt notification log entry: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

// History returns a user's logged notifications, most recent first.
// A limit of zero or less returns everything.
func (l *RedisLog) History(ctx context.Context, userID types.MemberID, limit int) ([]models.Notification, error) {
	all, err := l.Recent(ctx, 0)
	if err != nil {
		return nil, err
	}
	var out []models.Notification
	for _, n := range all {
		if n.ForUser != userID {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close closes the Redis connection
func (l *RedisLog) Close() error {
	return l.rdb.Close()
}
