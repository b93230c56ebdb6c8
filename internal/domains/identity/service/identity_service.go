package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/identity/model"
	"library-catalog/internal/domains/identity/repository"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/logger"
)

// Service handles registration, login and the group bootstrap.
// Token issuance and password hashing live here, behind the collaborator
// boundary; the catalog handlers only ever see a resolved *model.User.
type Service interface {
	// Register creates a user with a bcrypt-hashed password.
	// Errors: ErrUsernameTaken.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and issues an access/refresh token pair.
	// Errors: ErrInvalidCredentials (for unknown user and bad password alike).
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)

	// GetByID resolves a user with groups and permissions loaded.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// EnsureDefaultGroups provisions the Admins/Editors/Viewers groups.
	// Safe to call on every startup.
	EnsureDefaultGroups(ctx context.Context) error
}

type identityService struct {
	repo   repository.Repository
	tokens *jwt.Manager
}

func NewService(repo repository.Repository, tokens *jwt.Manager) Service {
	return &identityService{repo: repo, tokens: tokens}
}

func (s *identityService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})
	return user, nil
}

func (s *identityService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *identityService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *identityService) EnsureDefaultGroups(ctx context.Context) error {
	for _, name := range []string{model.GroupAdmins, model.GroupEditors, model.GroupViewers} {
		if _, err := s.repo.EnsureGroup(ctx, name, model.DefaultGroupPermissions[name]); err != nil {
			return fmt.Errorf("failed to ensure group %s: %w", name, err)
		}
	}
	return nil
}
