// Package templates holds the per-phase subtask checklists
package templates

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ErrUnknownRole indicates a template names a role nobody in the directory holds
var ErrUnknownRole = errors.New("no team member holds role")

// RoleResolver finds the member responsible for a role
type RoleResolver interface {
	ByRole(role string) (*models.TeamMember, bool)
}

// Registry maps a column to its ordered checklist templates
type Registry struct {
	byColumn map[types.ColumnID][]models.SubtaskTemplate
}

// NewRegistry copies the template lists so callers can't mutate them later
func NewRegistry(byColumn map[types.ColumnID][]models.SubtaskTemplate) *Registry {
	r := &Registry{byColumn: make(map[types.ColumnID][]models.SubtaskTemplate, len(byColumn))}
	for id, list := range byColumn {
		r.byColumn[id] = append([]models.SubtaskTemplate(nil), list...)
	}
	return r
}

// ForPhase returns the templates for a column in order.
// Unknown columns have no checklist.
func (r *Registry) ForPhase(columnID types.ColumnID) []models.SubtaskTemplate {
	return append([]models.SubtaskTemplate(nil), r.byColumn[columnID]...)
}

// Validate checks every role used by the templates resolves to a member
func (r *Registry) Validate(roles RoleResolver) error {
	for columnID, list := range r.byColumn {
		for _, tmpl := range list {
			if _, ok := roles.ByRole(tmpl.AssignedRole); !ok {
				return fmt.Errorf("%s/%q: %w %q", columnID, tmpl.Title, ErrUnknownRole, tmpl.AssignedRole)
			}
			if tmpl.IsTerminal() {
				continue
			}
			if _, ok := roles.ByRole(tmpl.NextAssigneeRole); !ok {
				return fmt.Errorf("%s/%q: %w %q", columnID, tmpl.Title, ErrUnknownRole, tmpl.NextAssigneeRole)
			}
		}
	}
	return nil
}

// Instantiate builds a fresh, uncompleted checklist for a column.
// Every subtask gets a new ID from newID.
func (r *Registry) Instantiate(columnID types.ColumnID, roles RoleResolver, newID types.IDGenerator) ([]models.Subtask, error) {
	list := r.byColumn[columnID]
	subtasks := make([]models.Subtask, 0, len(list))
	for _, tmpl := range list {
		assignee, ok := roles.ByRole(tmpl.AssignedRole)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRole, tmpl.AssignedRole)
		}

		var next *models.TeamMember
		if !tmpl.IsTerminal() {
			next, ok = roles.ByRole(tmpl.NextAssigneeRole)
			if !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownRole, tmpl.NextAssigneeRole)
			}
		}

		subtasks = append(subtasks, models.Subtask{
			ID:           types.SubtaskID(newID()),
			Title:        tmpl.Title,
			Completed:    false,
			AssignedTo:   assignee,
			NextAssignee: next,
		})
	}
	return subtasks, nil
}
