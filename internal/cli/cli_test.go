package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/events"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

func TestOpenSink_None(t *testing.T) {
	sink, err := openSink(context.Background(), config.LogConfig{Driver: config.LogDriverNone})
	require.NoError(t, err)
	assert.Nil(t, sink)
	assert.Nil(t, historyOf(sink))
}

func TestOpenSink_SQLiteKeepsHistory(t *testing.T) {
	ctx := context.Background()
	sink, err := openSink(ctx, config.LogConfig{
		Driver:  config.LogDriverSQLite,
		Path:    filepath.Join(t.TempDir(), "notifications.db"),
		Retries: 2,
	})
	require.NoError(t, err)
	defer sink.Close()

	assert.IsType(t, &events.RetrySink{}, sink)
	h := historyOf(sink)
	require.NotNil(t, h)

	require.NoError(t, sink.Append(ctx, models.Notification{ID: "n1", ForUser: "tm1", Message: "hi"}))
	got, err := h.History(ctx, "tm1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Message)
}

func TestOpenSink_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	sink, err := openSink(context.Background(), config.LogConfig{
		Driver:    config.LogDriverRedis,
		RedisAddr: mr.Addr(),
		RedisKey:  "phaseboard:test",
		Retries:   1,
	})
	require.NoError(t, err)
	defer sink.Close()
	assert.NotNil(t, historyOf(sink))
}

func TestOpenSink_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := openSink(context.Background(), config.LogConfig{
		Driver:    config.LogDriverRedis,
		RedisAddr: addr,
		RedisKey:  "phaseboard:test",
	})
	assert.Error(t, err)
}

func TestNotificationHistory_Disabled(t *testing.T) {
	c := &CLI{ctx: context.Background()}
	_, err := c.NotificationHistory("tm1", 10)
	assert.ErrorIs(t, err, ErrNoHistory)
}
