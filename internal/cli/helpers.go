package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/models"
	boardservice "github.com/thenoetrevino/phaseboard/internal/services/board"
	"github.com/thenoetrevino/phaseboard/internal/team"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// Classify maps an error to its exit code and machine-readable error code
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, boardservice.ErrCardNotFound):
		return ExitNotFound, "CARD_NOT_FOUND"
	case errors.Is(err, boardservice.ErrUnknownColumn):
		return ExitNotFound, "COLUMN_NOT_FOUND"
	case errors.Is(err, boardservice.ErrSubtaskNotFound):
		return ExitNotFound, "SUBTASK_NOT_FOUND"
	case errors.Is(err, team.ErrMemberNotFound):
		return ExitNotFound, "MEMBER_NOT_FOUND"
	case errors.Is(err, metrics.ErrInvalidMetricsInput):
		return ExitValidation, "INVALID_METRICS"
	case errors.Is(err, boardservice.ErrEmptyTitle):
		return ExitValidation, "EMPTY_TITLE"
	case errors.Is(err, boardservice.ErrDuplicateCard):
		return ExitValidation, "DUPLICATE_CARD"
	case errors.Is(err, models.ErrInvalidStatus):
		return ExitValidation, "INVALID_STATUS"
	case errors.Is(err, config.ErrInvalidPipeline):
		return ExitDataErr, "INVALID_PIPELINE"
	case errors.Is(err, ErrNoHistory):
		return ExitUsage, "NO_HISTORY"
	default:
		return ExitError, "ERROR"
	}
}

// ParseIDList splits a comma separated flag value, dropping blanks
func ParseIDList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResolveMembers looks up each member ID in the team directory
func ResolveMembers(dir *team.Directory, raw string) ([]*models.TeamMember, error) {
	var out []*models.TeamMember
	for _, id := range ParseIDList(raw) {
		m, err := dir.Lookup(types.MemberID(id))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// StatusList renders the accepted status values for usage hints
func StatusList() string {
	names := make([]string, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		names[i] = strings.ToLower(string(s))
	}
	return fmt.Sprintf("must be one of: %s", strings.Join(names, ", "))
}
