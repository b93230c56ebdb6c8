// Package authz is the permission gate. Every handler calls Decide (or
// DecideView) before performing any side effect; the policy itself is a
// fixed table, not a configurable rule engine.
package authz

import (
	"library-catalog/internal/domains/identity/model"
)

// Resource is the resource family an action is tagged with.
type Resource string

const (
	ResourceBook    Resource = "book"
	ResourceArticle Resource = "article"
)

// Action is the requested operation on a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Reason distinguishes why a request was denied. Both map to HTTP 403
// on the wire (the source system never used 401), but logs and callers
// can tell them apart.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(user *model.User) Decision {
	if user == nil {
		return Decision{Reason: ReasonUnauthenticated}
	}
	return Decision{Reason: ReasonForbidden}
}

// Message returns the human-readable denial message.
func (d Decision) Message() string {
	if d.Reason == ReasonUnauthenticated {
		return "Authentication required"
	}
	return "You do not have permission to perform this action"
}

// articlePermissions maps each article action to its required codename.
var articlePermissions = map[Action]string{
	ActionList:     model.PermCanView,
	ActionRetrieve: model.PermCanView,
	ActionCreate:   model.PermCanCreate,
	ActionUpdate:   model.PermCanEdit,
	ActionDelete:   model.PermCanDelete,
}

// Decide applies the policy for a resource/action pair. user == nil
// means the caller is anonymous.
//
// Book reads are open to anyone; book writes need any authenticated
// identity. Article actions each require one permission codename, held
// directly or through a group.
func Decide(user *model.User, resource Resource, action Action) Decision {
	switch resource {
	case ResourceBook:
		if action == ActionList || action == ActionRetrieve {
			return allow()
		}
		if user == nil {
			return deny(nil)
		}
		return allow()

	case ResourceArticle:
		codename, ok := articlePermissions[action]
		if !ok {
			return deny(user)
		}
		if user.HasPermission(codename) {
			return allow()
		}
		return deny(user)
	}

	return deny(user)
}

// DecideView gates the role views: the caller's derived role must match
// the view's required role exactly. A user with no derived role is
// denied everywhere.
func DecideView(user *model.User, required model.Role) Decision {
	if user == nil {
		return deny(nil)
	}
	if role := model.RoleOf(user); role != required || role == model.RoleNone {
		return deny(user)
	}
	return allow()
}
