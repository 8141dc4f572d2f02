package types

import "github.com/google/uuid"

// ID types give the string identifiers flowing through the board a domain
// meaning, so a card ID can't be passed where a member ID is expected.

// ColumnID identifies a pipeline column (phase), e.g. "script-testing"
type ColumnID string

// CardID identifies a creative card for its whole lifetime
type CardID string

// SubtaskID identifies one instantiated checklist item
type SubtaskID string

// MemberID identifies a team member
type MemberID string

// NotificationID identifies a ledger entry
type NotificationID string

// IDGenerator produces fresh, never reused identifiers
type IDGenerator func() string

// NewID is the default IDGenerator backed by random UUIDs
func NewID() string {
	return uuid.NewString()
}

func (id ColumnID) String() string {
	return string(id)
}

func (id CardID) String() string {
	return string(id)
}

func (id SubtaskID) String() string {
	return string(id)
}

func (id MemberID) String() string {
	return string(id)
}

func (id NotificationID) String() string {
	return string(id)
}
