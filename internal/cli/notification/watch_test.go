package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/app"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/database"
	testcli "github.com/thenoetrevino/phaseboard/internal/testutil/cli"
)

func TestWatch_StreamsMatchingNotifications(t *testing.T) {
	mr := miniredis.RunT(t)
	log, err := database.NewRedisLog(&redis.Options{Addr: mr.Addr()}, "phaseboard:notifications")
	require.NoError(t, err)

	a := testcli.SetupCLITest(t, app.WithSink(log))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	type result struct {
		output string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		out, err := testcli.ExecuteCLICommandWithContext(t, ctx, a, WatchCmd(),
			[]string{"--user", "tm2", "--redis-addr", mr.Addr(), "--quiet", "--count", "1"})
		done <- result{out, err}
	}()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(log.EventsChannel())[log.EventsChannel()] > 0
	}, 5*time.Second, 10*time.Millisecond)

	// One notification each for tm1 and tm2; only tm2's is printed
	moveDemoScript(t, a)

	r := <-done
	require.NoError(t, r.err)
	want := a.Ledger.NotificationsFor("tm2")[0].ID.String()
	assert.Equal(t, want, strings.TrimSpace(r.output))
}

func TestWatch_NeedsRedis(t *testing.T) {
	a := testcli.SetupCLITest(t)

	_, err := testcli.ExecuteCLICommand(t, a, WatchCmd(), []string{"--user", "tm1", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestDefaultUserFromEnvironment(t *testing.T) {
	a := testcli.SetupCLITest(t)
	moveDemoScript(t, a)
	t.Setenv("PHASEBOARD_USER", "tm1")

	output, err := testcli.ExecuteCLICommand(t, a, UnreadCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(output))

	t.Setenv("PHASEBOARD_USER", "nobody")
	_, err = testcli.ExecuteCLICommand(t, a, UnreadCmd(), []string{"--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

