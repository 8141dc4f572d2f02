package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/cli"
	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/testutil"
	testcli "github.com/thenoetrevino/phaseboard/internal/testutil/cli"
)

func TestReport_SingleColumnJSON(t *testing.T) {
	app := testcli.SetupCLITest(t)
	card, _ := testutil.CardByTitle(t, app, "Problem-Solution Hook")
	_, _, err := app.RecordMetrics(card.ID, metrics.Base{
		Views: 1000, Clicks: 50, Conversions: 5, Revenue: 500, Cost: 200,
	}, "tm4")
	require.NoError(t, err)

	output, err := testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"hook-testing", "--json"})
	require.NoError(t, err)

	result := testcli.ParseJSON(t, output)
	reports := result["reports"].([]interface{})
	require.Len(t, reports, 1)
	r := reports[0].(map[string]interface{})
	assert.Equal(t, float64(2), r["phaseNumber"])
	assert.Equal(t, "Hook Testing", r["phaseTitle"])

	m := r["metrics"].(map[string]interface{})
	top := m["topPerformer"].(map[string]interface{})
	assert.Equal(t, card.ID.String(), top["cardId"])
	assert.Len(t, r["winningCards"], 1)
}

func TestReport_AllMarkdown(t *testing.T) {
	app := testcli.SetupCLITest(t)

	output, err := testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"--all", "--format", "markdown"})
	require.NoError(t, err)
	assert.Contains(t, output, "Phase 1")
	assert.Contains(t, output, "Phase 4")
	assert.Equal(t, 3, strings.Count(output, "\n---\n"))
}

func TestReport_PrettyRendersWithGlamour(t *testing.T) {
	app := testcli.SetupCLITest(t)

	output, err := testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"scaling", "--style", "notty"})
	require.NoError(t, err)
	assert.Contains(t, output, "Scaling")
	assert.Contains(t, output, "Summary")
}

func TestReport_WritesFiles(t *testing.T) {
	app := testcli.SetupCLITest(t)
	dir := filepath.Join(t.TempDir(), "reports")

	output, err := testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"--all", "--out", dir, "--quiet"})
	require.NoError(t, err)

	paths := strings.Fields(output)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "phase-1-report-2024-06-03.json"), paths[0])

	data, err := os.ReadFile(paths[3])
	require.NoError(t, err)
	var r map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, float64(4), r["phaseNumber"])
}

func TestReport_UsageErrors(t *testing.T) {
	app := testcli.SetupCLITest(t)

	_, err := testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"scaling", "--all", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"scaling", "--format", "pdf", "--json"})
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = testcli.ExecuteCLICommand(t, app, ReportCmd(), []string{"nowhere", "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
