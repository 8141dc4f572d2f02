package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/notifications"
)

// flakySink fails the first failures appends
type flakySink struct {
	mu       sync.Mutex
	failures int
	attempts int
	got      []models.Notification
	closed   bool
}

func (s *flakySink) Append(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.attempts <= s.failures {
		return errors.New("database is locked")
	}
	s.got = append(s.got, n)
	return nil
}

func (s *flakySink) Close() error {
	s.closed = true
	return nil
}

var _ notifications.Sink = (*RetrySink)(nil)

func fastBackoff(t *testing.T) {
	t.Helper()
	prev := baseDelay
	baseDelay = time.Millisecond
	t.Cleanup(func() { baseDelay = prev })
}

func TestAppendWithRetry_SucceedsAfterFailures(t *testing.T) {
	fastBackoff(t)
	sink := &flakySink{failures: 2}

	err := AppendWithRetry(context.Background(), sink, models.Notification{ID: "n1"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sink.attempts)
	require.Len(t, sink.got, 1)
}

func TestAppendWithRetry_GivesUp(t *testing.T) {
	fastBackoff(t)
	sink := &flakySink{failures: 5}

	err := AppendWithRetry(context.Background(), sink, models.Notification{ID: "n1"}, 3)
	assert.EqualError(t, err, "database is locked")
	assert.Equal(t, 3, sink.attempts)
}

func TestAppendWithRetry_NilSinkAndZeroRetries(t *testing.T) {
	assert.NoError(t, AppendWithRetry(context.Background(), nil, models.Notification{}, 3))

	sink := &flakySink{}
	require.NoError(t, AppendWithRetry(context.Background(), sink, models.Notification{}, 0))
	assert.Equal(t, 1, sink.attempts, "at least one attempt")
}

func TestAppendWithRetry_StopsOnCancel(t *testing.T) {
	sink := &flakySink{failures: 10}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := AppendWithRetry(ctx, sink, models.Notification{}, 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sink.attempts)
}

func TestRetrySink(t *testing.T) {
	fastBackoff(t)
	inner := &flakySink{failures: 1}
	sink := NewRetrySink(inner, 2)

	require.NoError(t, sink.Append(context.Background(), models.Notification{ID: "n1"}))
	assert.Len(t, inner.got, 1)
	assert.Same(t, inner, sink.Unwrap())

	require.NoError(t, sink.Close())
	assert.True(t, inner.closed)
}
