package models

import (
	"time"

	"github.com/thenoetrevino/phaseboard/internal/types"
)

// PhaseInfo records which phase a card is in and when it entered it
type PhaseInfo struct {
	Current   int       `json:"current"`
	StartedAt time.Time `json:"startedAt"`
}

// Card is a creative-marketing asset moving through the pipeline
type Card struct {
	ID           types.CardID  `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       Status        `json:"status"`
	Tags         []Tag         `json:"tags"`
	Phase        PhaseInfo     `json:"phase"`
	Metrics      *Metrics      `json:"metrics,omitempty"`
	Subtasks     []Subtask     `json:"subtasks"`
	AssignedTo   []*TeamMember `json:"assignedTo"`
	Files        []Attachment  `json:"files,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	VariantID    string        `json:"variantId,omitempty"`
	CampaignName string        `json:"campaignName,omitempty"`
}

// Clone returns a deep copy. Team members are immutable and stay shared.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	out := *c
	out.Tags = append([]Tag(nil), c.Tags...)
	out.Subtasks = append([]Subtask(nil), c.Subtasks...)
	out.AssignedTo = append([]*TeamMember(nil), c.AssignedTo...)
	out.Files = append([]Attachment(nil), c.Files...)
	if c.Metrics != nil {
		m := *c.Metrics
		out.Metrics = &m
	}
	return &out
}

// AllSubtasksCompleted reports whether every subtask is done.
// A card without subtasks counts as completed.
func (c *Card) AllSubtasksCompleted() bool {
	for _, st := range c.Subtasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

// AnySubtaskCompleted reports whether at least one subtask is done
func (c *Card) AnySubtaskCompleted() bool {
	for _, st := range c.Subtasks {
		if st.Completed {
			return true
		}
	}
	return false
}

// IsAssigned reports whether the member appears in AssignedTo
func (c *Card) IsAssigned(id types.MemberID) bool {
	for _, m := range c.AssignedTo {
		if m != nil && m.ID == id {
			return true
		}
	}
	return false
}

// HasTag reports whether the card carries the tag
func (c *Card) HasTag(id string) bool {
	for _, t := range c.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// SubtaskIndex returns the position of a subtask, or -1
func (c *Card) SubtaskIndex(id types.SubtaskID) int {
	for i, st := range c.Subtasks {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// GetID returns the card ID as a string, for quiet CLI output
func (c *Card) GetID() string {
	return c.ID.String()
}
