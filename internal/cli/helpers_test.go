package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/models"
	boardservice "github.com/thenoetrevino/phaseboard/internal/services/board"
	"github.com/thenoetrevino/phaseboard/internal/team"
)

// ============================================================================
// Error Classification Tests
// ============================================================================

func TestClassify(t *testing.T) {
	_, statusErr := models.ParseStatus("done")

	tests := []struct {
		name     string
		err      error
		wantExit int
		wantCode string
	}{
		{"card", fmt.Errorf("%w: c1", boardservice.ErrCardNotFound), ExitNotFound, "CARD_NOT_FOUND"},
		{"column", fmt.Errorf("%w: x", boardservice.ErrUnknownColumn), ExitNotFound, "COLUMN_NOT_FOUND"},
		{"subtask", boardservice.ErrSubtaskNotFound, ExitNotFound, "SUBTASK_NOT_FOUND"},
		{"member", team.ErrMemberNotFound, ExitNotFound, "MEMBER_NOT_FOUND"},
		{"metrics", metrics.ErrInvalidMetricsInput, ExitValidation, "INVALID_METRICS"},
		{"title", boardservice.ErrEmptyTitle, ExitValidation, "EMPTY_TITLE"},
		{"status", statusErr, ExitValidation, "INVALID_STATUS"},
		{"history", ErrNoHistory, ExitUsage, "NO_HISTORY"},
		{"pipeline", fmt.Errorf("%w: no columns", config.ErrInvalidPipeline), ExitDataErr, "INVALID_PIPELINE"},
		{"other", fmt.Errorf("disk on fire"), ExitError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit, code := Classify(tt.err)
			assert.Equal(t, tt.wantExit, exit)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCoded(t *testing.T) {
	assert.NoError(t, Coded(nil))
	assert.Equal(t, ExitNotFound, ExitCode(Coded(team.ErrMemberNotFound)))
	assert.Equal(t, ExitError, ExitCode(Coded(fmt.Errorf("boom"))))

	already := &CodedError{Code: ExitUsage, Err: fmt.Errorf("bad flag")}
	assert.Same(t, already, Coded(already))
	assert.ErrorIs(t, Coded(team.ErrMemberNotFound), team.ErrMemberNotFound)
}

// ============================================================================
// Flag Parsing Tests
// ============================================================================

func TestParseIDList(t *testing.T) {
	assert.Nil(t, ParseIDList(""))
	assert.Equal(t, []string{"tm1", "tm2"}, ParseIDList(" tm1, ,tm2,"))
}

func TestResolveMembers(t *testing.T) {
	dir, err := team.NewDirectory([]models.TeamMember{
		{ID: "tm1", Name: "Alex Chen", Role: models.RoleScriptwriter},
		{ID: "tm2", Name: "Sarah Johnson", Role: models.RoleVideoEditor},
	})
	require.NoError(t, err)

	members, err := ResolveMembers(dir, "tm2,tm1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Sarah Johnson", members[0].Name)

	_, err = ResolveMembers(dir, "tm1,tm9")
	assert.ErrorIs(t, err, team.ErrMemberNotFound)

	none, err := ResolveMembers(dir, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStatusList(t *testing.T) {
	assert.Equal(t,
		"must be one of: in_progress, testing, winning, needs_improvement, complete",
		StatusList())
}
