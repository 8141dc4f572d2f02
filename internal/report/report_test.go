package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/models"
)

// ============================================================================
// FIXTURES
// ============================================================================

var (
	reportTime = time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)

	alex  = &models.TeamMember{ID: "tm1", Name: "Alex Chen", Role: models.RoleScriptwriter}
	sarah = &models.TeamMember{ID: "tm2", Name: "Sarah Miller", Role: models.RoleCreativeDirector}
	james = &models.TeamMember{ID: "tm3", Name: "James Wilson", Role: models.RoleVideoEditor}
	maria = &models.TeamMember{ID: "tm4", Name: "Maria Garcia", Role: models.RoleMarketingAnalyst}

	team = []*models.TeamMember{alex, sarah, james, maria}
)

func withMetrics(ctr, conv, roas float64) *models.Metrics {
	return &models.Metrics{
		Views:          1000,
		Clicks:         50,
		CTR:            ctr,
		ConversionRate: conv,
		ROAS:           roas,
		UpdatedAt:      reportTime,
		UpdatedBy:      maria,
	}
}

func hookColumn() *models.Column {
	return &models.Column{
		ID:    "hook-testing",
		Title: "Hook Testing",
		Phase: 2,
		Cards: []*models.Card{
			{
				ID:         "c1",
				Title:      "Problem-Solution Hook",
				Status:     models.StatusWinning,
				VariantID:  "PSH-1",
				Metrics:    withMetrics(4, 8, 3.0),
				AssignedTo: []*models.TeamMember{james, maria},
				Subtasks: []models.Subtask{
					{ID: "s1", Title: "Generate Hook Variants", Completed: true, AssignedTo: alex, NextAssignee: james},
					{ID: "s2", Title: "Edit Video", Completed: true, AssignedTo: james, NextAssignee: maria},
				},
				Phase:     models.PhaseInfo{Current: 2, StartedAt: reportTime},
				CreatedAt: reportTime,
			},
			{
				ID:         "c2",
				Title:      "Benefit-First Hook",
				Status:     models.StatusNeedsImprovement,
				VariantID:  "PSH-1",
				Metrics:    withMetrics(2, 4, 1.0),
				AssignedTo: []*models.TeamMember{alex, james},
				Subtasks: []models.Subtask{
					{ID: "s3", Title: "Generate Hook Variants", Completed: true, AssignedTo: alex, NextAssignee: james},
					{ID: "s4", Title: "Edit Video", Completed: false, AssignedTo: james, NextAssignee: maria},
				},
				Phase:     models.PhaseInfo{Current: 2, StartedAt: reportTime},
				CreatedAt: reportTime,
			},
		},
	}
}

// ============================================================================
// GENERATE
// ============================================================================

func TestGenerate_TopPerformerAndAverages(t *testing.T) {
	r := Generate(hookColumn(), nil, team, reportTime)

	assert.Equal(t, 2, r.PhaseNumber)
	assert.Equal(t, "Hook Testing", r.PhaseTitle)
	assert.Equal(t, reportTime, r.GeneratedAt)

	require.NotNil(t, r.Metrics.TopPerformer)
	assert.Equal(t, "c1", r.Metrics.TopPerformer.CardID.String())
	assert.Equal(t, 3.0, r.Metrics.TopPerformer.Metrics.ROAS)
	assert.InDelta(t, 2.0, r.Metrics.AverageROAS, 1e-9)
	assert.InDelta(t, 3.0, r.Metrics.AverageCTR, 1e-9)
	assert.InDelta(t, 6.0, r.Metrics.AverageConversionRate, 1e-9)
}

func TestGenerate_Summary(t *testing.T) {
	col := hookColumn()
	col.Cards = append(col.Cards, &models.Card{ID: "c3", Title: "No checklist"})

	r := Generate(col, nil, team, reportTime)

	assert.Equal(t, Summary{TotalCards: 3, CompletedCards: 2, WinningCards: 1}, r.Summary,
		"c1 is fully done and c3 has no subtasks")
	require.Len(t, r.WinningCards, 1)
	assert.Equal(t, "c1", r.WinningCards[0].ID.String())
}

func TestGenerate_NoMetrics(t *testing.T) {
	col := &models.Column{ID: "scaling", Title: "Scaling & Optimization", Phase: 4, Cards: []*models.Card{
		{ID: "a", Title: "A", VariantID: "X-1"},
	}}

	r := Generate(col, nil, team, reportTime)

	assert.Nil(t, r.Metrics.TopPerformer)
	assert.Zero(t, r.Metrics.AverageROAS)
	assert.Equal(t, VariantReport{Count: 1}, r.Variants["X-1"])
}

func TestGenerate_EmptyColumn(t *testing.T) {
	r := Generate(&models.Column{ID: "e", Title: "Empty", Phase: 1}, nil, nil, reportTime)

	assert.Equal(t, Summary{}, r.Summary)
	assert.Empty(t, r.Variants)
	assert.NotNil(t, r.WinningCards)
	assert.NotNil(t, r.TeamContributions)
}

func TestGenerate_TiesKeepFirstCard(t *testing.T) {
	col := &models.Column{ID: "x", Phase: 1, Cards: []*models.Card{
		{ID: "first", VariantID: "V", Metrics: withMetrics(1, 1, 2)},
		{ID: "second", VariantID: "V", Metrics: withMetrics(1, 1, 2)},
	}}

	r := Generate(col, nil, team, reportTime)

	assert.Equal(t, "first", r.Metrics.TopPerformer.CardID.String())
	assert.Equal(t, "first", r.Variants["V"].BestPerformer.ID.String())
}

func TestGenerate_Variants(t *testing.T) {
	col := hookColumn()
	col.Cards = append(col.Cards,
		&models.Card{ID: "c3", Title: "Loose card", Metrics: withMetrics(10, 10, 10)},
		&models.Card{ID: "c4", Title: "Other variant", VariantID: "BFH-1"},
	)

	r := Generate(col, nil, team, reportTime)

	require.Len(t, r.Variants, 2, "cards without a variant are excluded")
	psh := r.Variants["PSH-1"]
	assert.Equal(t, 2, psh.Count)
	assert.InDelta(t, 2.0, psh.AverageMetrics.ROAS, 1e-9)
	require.NotNil(t, psh.BestPerformer)
	assert.Equal(t, "c1", psh.BestPerformer.ID.String())

	bfh := r.Variants["BFH-1"]
	assert.Equal(t, 1, bfh.Count)
	assert.Nil(t, bfh.BestPerformer)

	assert.Equal(t, "c3", r.Metrics.TopPerformer.CardID.String(), "top performer still considers every card")
}

func TestGenerate_TeamContributions(t *testing.T) {
	r := Generate(hookColumn(), nil, team, reportTime)

	assert.Equal(t, []TeamContribution{
		{MemberID: "tm1", Name: "Alex Chen", TasksCompleted: 2, CardsOwned: 1},
		{MemberID: "tm2", Name: "Sarah Miller", TasksCompleted: 0, CardsOwned: 0},
		{MemberID: "tm3", Name: "James Wilson", TasksCompleted: 1, CardsOwned: 2},
		{MemberID: "tm4", Name: "Maria Garcia", TasksCompleted: 0, CardsOwned: 1},
	}, r.TeamContributions)
}

func TestGenerate_NextPhaseCardsAreCarriedOnly(t *testing.T) {
	next := []*models.Card{{ID: "moved", Title: "Already moved", Phase: models.PhaseInfo{Current: 3}}}

	with := Generate(hookColumn(), next, team, reportTime)
	without := Generate(hookColumn(), nil, team, reportTime)

	assert.Equal(t, without.Summary, with.Summary)
	assert.Equal(t, without.Metrics, with.Metrics)
	assert.Equal(t, without.Variants, with.Variants)
	assert.Equal(t, without.TeamContributions, with.TeamContributions)
	require.Len(t, with.NextPhaseCards(), 1)
	assert.Equal(t, "moved", with.NextPhaseCards()[0].ID.String())
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	col := hookColumn()
	pristine := col.Clone()

	r := Generate(col, nil, team, reportTime)
	r.WinningCards[0].Title = "edited in report"
	r.Variants["PSH-1"].BestPerformer.Status = models.StatusComplete

	if diff := cmp.Diff(pristine, col); diff != "" {
		t.Errorf("Generate mutated its input (-before +after):\n%s", diff)
	}
}

// ============================================================================
// SERIALIZATION
// ============================================================================

func TestWriteJSON_RoundTrip(t *testing.T) {
	r := Generate(hookColumn(), nil, team, reportTime)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))
	assert.Contains(t, buf.String(), "\n  \"phaseNumber\": 2", "two-space indent")

	var back PhaseReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))

	assert.Equal(t, r.Summary, back.Summary)
	assert.Equal(t, r.Metrics, back.Metrics)
	assert.Equal(t, r.Variants, back.Variants)
	assert.Equal(t, r.TeamContributions, back.TeamContributions)
}

func TestWriteJSON_FieldNames(t *testing.T) {
	col := &models.Column{ID: "e", Title: "Empty", Phase: 1}
	r := Generate(col, nil, []*models.TeamMember{alex}, reportTime)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	for _, key := range []string{"phaseNumber", "phaseTitle", "generatedAt", "summary", "metrics", "variants", "winningCards", "teamContributions"} {
		assert.Contains(t, doc, key)
	}
	metrics := doc["metrics"].(map[string]any)
	assert.Contains(t, metrics, "averageCTR")
	assert.Contains(t, metrics, "averageConversionRate")
	assert.Contains(t, metrics, "averageROAS")
	assert.Nil(t, metrics["topPerformer"], "absent top performer is null")

	contrib := doc["teamContributions"].([]any)[0].(map[string]any)
	assert.Equal(t, "tm1", contrib["memberId"])
	assert.NotContains(t, doc, "nextPhaseCards")
}

func TestFileName(t *testing.T) {
	r := Generate(hookColumn(), nil, team, reportTime)
	assert.Equal(t, "phase-2-report-2024-03-15.json", FileName(r))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Generate(hookColumn(), nil, team, reportTime))

	assert.Contains(t, md, "# Phase 2: Hook Testing")
	assert.Contains(t, md, "Top performer: **Problem-Solution Hook**")
	assert.Contains(t, md, "| PSH-1 | 2 |")
	assert.Contains(t, md, "| James Wilson | 1 | 2 |")
}

func TestMarkdown_EscapesTableCells(t *testing.T) {
	col := hookColumn()
	col.Cards[0].Title = "Problem | Solution\nHook"
	for _, c := range col.Cards {
		c.VariantID = "PSH|1"
	}

	md := Markdown(Generate(col, nil, team, reportTime))

	assert.Contains(t, md, `| PSH\|1 | 2 |`)
	assert.Contains(t, md, `| Problem \| Solution Hook |`+"\n")
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "| PSH") {
			assert.Equal(t, 7, strings.Count(line, "|")-strings.Count(line, `\|`), "variant row keeps six columns")
		}
	}
}
