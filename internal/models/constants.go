package models

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// STATUS CONSTANTS
// ============================================================================

// Status is the lifecycle state of a card
type Status string

const (
	StatusInProgress       Status = "IN_PROGRESS"
	StatusTesting          Status = "TESTING"
	StatusWinning          Status = "WINNING"
	StatusNeedsImprovement Status = "NEEDS_IMPROVEMENT"
	StatusComplete         Status = "COMPLETE"
)

// AllStatuses lists every status in display order
var AllStatuses = []Status{
	StatusInProgress,
	StatusTesting,
	StatusWinning,
	StatusNeedsImprovement,
	StatusComplete,
}

// ErrInvalidStatus is returned by ParseStatus for unknown values
var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus maps user input (any case, dashes or underscores) to a Status
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, st := range AllStatuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w '%s'", ErrInvalidStatus, s)
}

// ============================================================================
// NOTIFICATION LEDGER DEFAULTS
// ============================================================================

// DefaultNotificationCapacity is how many notifications the ledger keeps
const DefaultNotificationCapacity = 100
