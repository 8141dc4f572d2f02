package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/app"
	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/logging"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// FixedNow is the clock reading every test App sees
var FixedNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

// SeqIDs returns a generator yielding id-1, id-2, ...
func SeqIDs() types.IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// IsolateHome points HOME and XDG_CONFIG_HOME at temp dirs so tests never
// read or write the developer's config, logs or notification database
func IsolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PHASEBOARD_PIPELINE_FILE", "")
	t.Setenv("PHASEBOARD_THEME_FILE", "")
	t.Setenv("PHASEBOARD_USER", "")
	return home
}

// NewTestApp builds an App from the built-in pipeline with a fixed clock,
// sequential IDs and a discarding logger. It is closed on cleanup.
func NewTestApp(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()

	p, err := config.DefaultPipeline()
	if err != nil {
		t.Fatalf("Failed to load default pipeline: %v", err)
	}

	base := []app.Option{
		app.WithLogger(logging.Discard()),
		app.WithClock(func() time.Time { return FixedNow }),
		app.WithIDGenerator(SeqIDs()),
	}
	a, err := app.New(p, append(base, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// CardByTitle finds a card anywhere on the board
func CardByTitle(t *testing.T, a *app.App, title string) (*models.Card, types.ColumnID) {
	t.Helper()
	for _, col := range a.Board.ListColumns() {
		for _, c := range col.Cards {
			if c.Title == title {
				return c, col.ID
			}
		}
	}
	t.Fatalf("no card titled %q", title)
	return nil, ""
}
