package templates

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

type roleMap map[string]*models.TeamMember

func (r roleMap) ByRole(role string) (*models.TeamMember, bool) {
	m, ok := r[role]
	return m, ok
}

var (
	writer   = &models.TeamMember{ID: "tm1", Name: "Alex Chen", Role: models.RoleScriptwriter}
	editor   = &models.TeamMember{ID: "tm3", Name: "James Wilson", Role: models.RoleVideoEditor}
	director = &models.TeamMember{ID: "tm2", Name: "Sarah Miller", Role: models.RoleCreativeDirector}
)

func testRoles() roleMap {
	return roleMap{
		models.RoleScriptwriter:     writer,
		models.RoleVideoEditor:      editor,
		models.RoleCreativeDirector: director,
	}
}

func counter() types.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("st-%d", n)
	}
}

func testRegistry() *Registry {
	return NewRegistry(map[types.ColumnID][]models.SubtaskTemplate{
		"script-testing": {
			{Title: "Write Script", AssignedRole: models.RoleScriptwriter, NextAssigneeRole: models.RoleVideoEditor},
			{Title: "Create Video Variant", AssignedRole: models.RoleVideoEditor, NextAssigneeRole: models.RoleCreativeDirector},
			{Title: "Archive", AssignedRole: models.RoleCreativeDirector},
		},
	})
}

func TestRegistry_ForPhase(t *testing.T) {
	reg := testRegistry()

	list := reg.ForPhase("script-testing")
	require.Len(t, list, 3)
	assert.Equal(t, "Write Script", list[0].Title)
	assert.True(t, list[2].IsTerminal())

	assert.Empty(t, reg.ForPhase("unknown"))

	list[0].Title = "mutated"
	assert.Equal(t, "Write Script", reg.ForPhase("script-testing")[0].Title)
}

func TestRegistry_Instantiate(t *testing.T) {
	reg := testRegistry()

	subtasks, err := reg.Instantiate("script-testing", testRoles(), counter())
	require.NoError(t, err)
	require.Len(t, subtasks, 3)

	for i, st := range subtasks {
		assert.Equal(t, types.SubtaskID(fmt.Sprintf("st-%d", i+1)), st.ID)
		assert.False(t, st.Completed)
	}
	assert.Same(t, writer, subtasks[0].AssignedTo)
	assert.Same(t, editor, subtasks[0].NextAssignee)
	assert.Nil(t, subtasks[2].NextAssignee, "terminal item has no next assignee")
}

func TestRegistry_InstantiateUnknownColumn(t *testing.T) {
	subtasks, err := testRegistry().Instantiate("nowhere", testRoles(), counter())
	require.NoError(t, err)
	assert.Empty(t, subtasks)
}

func TestRegistry_UnknownRole(t *testing.T) {
	roles := testRoles()
	delete(roles, models.RoleVideoEditor)

	_, err := testRegistry().Instantiate("script-testing", roles, counter())
	assert.True(t, errors.Is(err, ErrUnknownRole))
	assert.True(t, errors.Is(testRegistry().Validate(roles), ErrUnknownRole))
	assert.NoError(t, testRegistry().Validate(testRoles()))
}
