package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func memberOf(groups ...string) *User {
	u := &User{Username: "tester"}
	for _, name := range groups {
		u.Groups = append(u.Groups, Group{Name: name})
	}
	return u
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want Role
	}{
		{"nil user", nil, RoleNone},
		{"no groups", memberOf(), RoleNone},
		{"admins", memberOf(GroupAdmins), RoleAdmin},
		{"editors", memberOf(GroupEditors), RoleLibrarian},
		{"viewers", memberOf(GroupViewers), RoleMember},
		{"unknown group only", memberOf("Contractors"), RoleNone},
		{"admins beat editors", memberOf(GroupEditors, GroupAdmins), RoleAdmin},
		{"editors beat viewers", memberOf(GroupViewers, GroupEditors), RoleLibrarian},
		{"all three resolves to admin", memberOf(GroupViewers, GroupEditors, GroupAdmins), RoleAdmin},
		{"unknown group alongside viewers", memberOf("Contractors", GroupViewers), RoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleOf(tt.user))
		})
	}
}

func TestHasPermission(t *testing.T) {
	assert.False(t, (*User)(nil).HasPermission(PermCanView))

	direct := &User{Permissions: []string{PermCanView}}
	assert.True(t, direct.HasPermission(PermCanView))
	assert.False(t, direct.HasPermission(PermCanDelete))

	viaGroup := &User{Groups: []Group{{Name: GroupEditors, Permissions: DefaultGroupPermissions[GroupEditors]}}}
	assert.True(t, viaGroup.HasPermission(PermCanView))
	assert.True(t, viaGroup.HasPermission(PermCanEdit))
	assert.False(t, viaGroup.HasPermission(PermCanDelete))
}

func TestDefaultGroupPermissions(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{PermCanView, PermCanCreate, PermCanEdit, PermCanDelete},
		DefaultGroupPermissions[GroupAdmins])
	assert.ElementsMatch(t,
		[]string{PermCanView, PermCanCreate, PermCanEdit},
		DefaultGroupPermissions[GroupEditors])
	assert.ElementsMatch(t,
		[]string{PermCanView},
		DefaultGroupPermissions[GroupViewers])
}
