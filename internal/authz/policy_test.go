package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"library-catalog/internal/domains/identity/model"
)

func userWith(perms ...string) *model.User {
	return &model.User{Username: "tester", Permissions: perms}
}

func userInGroup(name string, perms ...string) *model.User {
	return &model.User{
		Username: "tester",
		Groups:   []model.Group{{Name: name, Permissions: perms}},
	}
}

func TestDecide_BookReadsOpenToAnonymous(t *testing.T) {
	assert.True(t, Decide(nil, ResourceBook, ActionList).Allowed)
	assert.True(t, Decide(nil, ResourceBook, ActionRetrieve).Allowed)
}

func TestDecide_BookWritesNeedIdentity(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		d := Decide(nil, ResourceBook, action)
		assert.False(t, d.Allowed, "anonymous %s should be denied", action)
		assert.Equal(t, ReasonUnauthenticated, d.Reason)

		// Any authenticated identity is enough, no codename needed.
		assert.True(t, Decide(userWith(), ResourceBook, action).Allowed)
	}
}

func TestDecide_ArticleActionsRequireCodename(t *testing.T) {
	tests := []struct {
		action   Action
		codename string
	}{
		{ActionList, model.PermCanView},
		{ActionRetrieve, model.PermCanView},
		{ActionCreate, model.PermCanCreate},
		{ActionUpdate, model.PermCanEdit},
		{ActionDelete, model.PermCanDelete},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			// Anonymous: denied as unauthenticated.
			d := Decide(nil, ResourceArticle, tt.action)
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonUnauthenticated, d.Reason)

			// Authenticated without the codename: denied as forbidden.
			d = Decide(userWith(), ResourceArticle, tt.action)
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonForbidden, d.Reason)

			// Direct grant.
			assert.True(t, Decide(userWith(tt.codename), ResourceArticle, tt.action).Allowed)

			// Grant through group membership.
			assert.True(t, Decide(userInGroup("Staff", tt.codename), ResourceArticle, tt.action).Allowed)
		})
	}
}

func TestDecide_WrongCodenameDoesNotUnlockOtherActions(t *testing.T) {
	viewer := userWith(model.PermCanView)

	assert.True(t, Decide(viewer, ResourceArticle, ActionList).Allowed)
	assert.False(t, Decide(viewer, ResourceArticle, ActionCreate).Allowed)
	assert.False(t, Decide(viewer, ResourceArticle, ActionUpdate).Allowed)
	assert.False(t, Decide(viewer, ResourceArticle, ActionDelete).Allowed)
}

func TestDecideView_ExactRoleMatch(t *testing.T) {
	admin := userInGroup(model.GroupAdmins)
	editor := userInGroup(model.GroupEditors)
	viewer := userInGroup(model.GroupViewers)
	outsider := userInGroup("Contractors")

	assert.True(t, DecideView(admin, model.RoleAdmin).Allowed)
	assert.True(t, DecideView(editor, model.RoleLibrarian).Allowed)
	assert.True(t, DecideView(viewer, model.RoleMember).Allowed)

	// A role unlocks its own view only; Admin is not a superset.
	assert.False(t, DecideView(admin, model.RoleLibrarian).Allowed)
	assert.False(t, DecideView(admin, model.RoleMember).Allowed)
	assert.False(t, DecideView(viewer, model.RoleAdmin).Allowed)

	// No derived role is denied everywhere.
	assert.False(t, DecideView(outsider, model.RoleAdmin).Allowed)
	assert.False(t, DecideView(outsider, model.RoleLibrarian).Allowed)
	assert.False(t, DecideView(outsider, model.RoleMember).Allowed)

	assert.False(t, DecideView(nil, model.RoleMember).Allowed)
}

func TestDecision_Message(t *testing.T) {
	assert.Equal(t, "Authentication required", Decide(nil, ResourceBook, ActionCreate).Message())
	assert.Equal(t,
		"You do not have permission to perform this action",
		Decide(userWith(), ResourceArticle, ActionCreate).Message())
}
