package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/identity/model"
)

// Repository defines data access for users, groups and permissions.
// Users are written by the auth handlers only; groups and permissions
// are written once by the bootstrap and read-only afterwards.
type Repository interface {
	// CreateUser inserts a new user.
	// Errors: ErrUsernameTaken if the username exists.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByID retrieves a user with groups and permissions loaded.
	// Errors: ErrUserNotFound.
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetUserByUsername retrieves a user with groups and permissions loaded.
	// Errors: ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// AddUserToGroup adds a membership; adding an existing membership is a no-op.
	// Errors: ErrUserNotFound, ErrGroupNotFound.
	AddUserToGroup(ctx context.Context, userID uuid.UUID, groupName string) error

	// EnsureGroup creates a group with the given permission set if it
	// does not exist yet. Existing groups are returned untouched, which
	// makes the startup bootstrap idempotent.
	EnsureGroup(ctx context.Context, name string, permissions []string) (*model.Group, error)

	// GetGroup retrieves a group by name.
	// Errors: ErrGroupNotFound.
	GetGroup(ctx context.Context, name string) (*model.Group, error)
}
