package cli

import (
	"testing"

	"github.com/thenoetrevino/phaseboard/internal/app"
	"github.com/thenoetrevino/phaseboard/internal/testutil"
)

// SetupCLITest isolates HOME and returns a seeded App for CLI tests.
// This lives in its own package so service tests importing testutil
// do not pull in the cli package.
func SetupCLITest(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()
	testutil.IsolateHome(t)
	return testutil.NewTestApp(t, opts...)
}
