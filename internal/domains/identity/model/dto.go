package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// RegisterRequest - POST /auth/register/
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

// LoginRequest - POST /auth/login/
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse carries the issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the wire representation of a user.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Groups   []string  `json:"groups"`
	Role     Role      `json:"role,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	groups := make([]string, len(u.Groups))
	for i, g := range u.Groups {
		groups[i] = g.Name
	}
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Groups:   groups,
		Role:     RoleOf(u),
	}
}
