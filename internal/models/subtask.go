package models

import "github.com/thenoetrevino/phaseboard/internal/types"

// SubtaskTemplate is the prototype for a phase checklist item.
// An empty NextAssigneeRole marks the last item of the hand-off chain.
type SubtaskTemplate struct {
	Title            string `json:"title" yaml:"title"`
	AssignedRole     string `json:"assignedRole" yaml:"assigned_role"`
	NextAssigneeRole string `json:"nextAssigneeRole,omitempty" yaml:"next_assignee_role,omitempty"`
}

// IsTerminal reports whether completing this item notifies nobody
func (t SubtaskTemplate) IsTerminal() bool {
	return t.NextAssigneeRole == ""
}

// Subtask is a checklist item instantiated when a card enters a phase
type Subtask struct {
	ID           types.SubtaskID `json:"id"`
	Title        string          `json:"title"`
	Completed    bool            `json:"completed"`
	AssignedTo   *TeamMember     `json:"assignedTo"`
	NextAssignee *TeamMember     `json:"nextAssignee,omitempty"`
}
