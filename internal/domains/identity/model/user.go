package model

import (
	"time"

	"github.com/google/uuid"
)

// Permission codenames for the article resource family.
const (
	PermCanView   = "can_view"
	PermCanCreate = "can_create"
	PermCanEdit   = "can_edit"
	PermCanDelete = "can_delete"
)

// Standard group names provisioned at bootstrap.
const (
	GroupAdmins  = "Admins"
	GroupEditors = "Editors"
	GroupViewers = "Viewers"
)

// DefaultGroupPermissions maps the standard groups to their permission
// codenames. The bootstrap creates these groups if absent and never
// touches groups an operator added by hand.
var DefaultGroupPermissions = map[string][]string{
	GroupAdmins:  {PermCanView, PermCanCreate, PermCanEdit, PermCanDelete},
	GroupEditors: {PermCanView, PermCanCreate, PermCanEdit},
	GroupViewers: {PermCanView},
}

// Group is a named set of permission codenames.
type Group struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Permissions []string  `json:"permissions" db:"permissions"`
}

// User is the resolved identity consumed by the policy layer.
// A nil *User means the caller is anonymous.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`

	// Groups are loaded with their permissions when the identity is
	// resolved; Permissions holds direct grants outside any group.
	Groups      []Group  `json:"groups"`
	Permissions []string `json:"permissions,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasPermission reports whether the user holds a permission codename,
// either directly or through any group membership.
func (u *User) HasPermission(codename string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == codename {
			return true
		}
	}
	for _, g := range u.Groups {
		for _, p := range g.Permissions {
			if p == codename {
				return true
			}
		}
	}
	return false
}

// InGroup reports whether the user belongs to the named group.
func (u *User) InGroup(name string) bool {
	if u == nil {
		return false
	}
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
