package model

// Role is the derived classification used by the role-gated views.
// It is computed from group membership, never stored.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleLibrarian Role = "Librarian"
	RoleMember    Role = "Member"
	RoleNone      Role = ""
)

// RoleOf maps a user's group memberships to a Role. The function is
// total: every input, including a nil user and an empty membership set,
// yields a defined Role. When a user belongs to several standard groups
// the strongest one wins (Admins > Editors > Viewers).
func RoleOf(u *User) Role {
	if u == nil {
		return RoleNone
	}
	switch {
	case u.InGroup(GroupAdmins):
		return RoleAdmin
	case u.InGroup(GroupEditors):
		return RoleLibrarian
	case u.InGroup(GroupViewers):
		return RoleMember
	default:
		return RoleNone
	}
}
