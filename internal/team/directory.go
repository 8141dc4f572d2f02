// Package team holds the static registry of team members
package team

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ErrMemberNotFound indicates the ID is not in the directory
var ErrMemberNotFound = errors.New("team member not found")

// Directory is a read-only lookup of team members, built once at start-up
type Directory struct {
	members []*models.TeamMember
	byID    map[types.MemberID]*models.TeamMember
}

// NewDirectory builds a directory preserving registration order.
// Duplicate IDs are rejected.
func NewDirectory(members []models.TeamMember) (*Directory, error) {
	d := &Directory{
		members: make([]*models.TeamMember, 0, len(members)),
		byID:    make(map[types.MemberID]*models.TeamMember, len(members)),
	}
	for i := range members {
		m := members[i]
		if m.ID == "" {
			return nil, fmt.Errorf("team member %q has no id", m.Name)
		}
		if _, exists := d.byID[m.ID]; exists {
			return nil, fmt.Errorf("duplicate team member id %q", m.ID)
		}
		d.members = append(d.members, &m)
		d.byID[m.ID] = &m
	}
	return d, nil
}

// Lookup returns the shared member for an ID
func (d *Directory) Lookup(id types.MemberID) (*models.TeamMember, error) {
	m, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	return m, nil
}

// Members returns every member in registration order
func (d *Directory) Members() []*models.TeamMember {
	return append([]*models.TeamMember(nil), d.members...)
}

// ByRole returns the first member holding the role
func (d *Directory) ByRole(role string) (*models.TeamMember, bool) {
	for _, m := range d.members {
		if m.Role == role {
			return m, true
		}
	}
	return nil, false
}
