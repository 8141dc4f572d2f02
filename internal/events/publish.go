package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/notifications"
)

// baseDelay is the first backoff step: 50ms, 100ms, 200ms, ...
var baseDelay = 50 * time.Millisecond

// AppendWithRetry attempts to append a notification with retry logic.
// It makes up to maxRetries attempts with exponential backoff and returns
// the error from the final attempt if all of them fail.
func AppendWithRetry(ctx context.Context, sink notifications.Sink, n models.Notification, maxRetries int) error {
	if sink == nil {
		return nil
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := sink.Append(ctx, n)
		if err == nil {
			if attempt > 0 {
				slog.Debug("notification appended after retry",
					"attempt", attempt+1,
					"notification_id", n.ID)
			}
			return nil
		}

		lastErr = err

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			delay := baseDelay * (1 << attempt)
			slog.Debug("notification append failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return lastErr
}

// RetrySink wraps a sink so transient append failures are retried
type RetrySink struct {
	sink       notifications.Sink
	maxRetries int
}

// NewRetrySink wraps sink with up to maxRetries attempts per append
func NewRetrySink(sink notifications.Sink, maxRetries int) *RetrySink {
	return &RetrySink{sink: sink, maxRetries: maxRetries}
}

// Append implements notifications.Sink
func (s *RetrySink) Append(ctx context.Context, n models.Notification) error {
	return AppendWithRetry(ctx, s.sink, n, s.maxRetries)
}

// Close closes the wrapped sink
func (s *RetrySink) Close() error {
	return s.sink.Close()
}

// Unwrap returns the wrapped sink
func (s *RetrySink) Unwrap() notifications.Sink {
	return s.sink
}
