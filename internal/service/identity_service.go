package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/repository"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// IdentityService owns accounts and issues identity tokens.
type IdentityService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewIdentityService builds the service.
func NewIdentityService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account. An empty role defaults to PATIENT.
func (s *IdentityService) Register(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	parsedRole := domain.RolePatient
	if strings.TrimSpace(role) != "" {
		r, ok := domain.ParseRole(role)
		if !ok {
			return nil, apperrors.NewValidationError("invalid payload", map[string]any{"role": "role"})
		}
		parsedRole = r
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, storeError("check username", err)
	}
	if taken {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": username})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Role:         parsedRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, createError("create user", err, "username already taken", map[string]any{"username": username})
	}
	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", user.Role.String()))
	return user, nil
}

// Login verifies credentials and issues a token. Unknown users and wrong
// passwords are indistinguishable.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, storeError("load user", err)
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokens.GenerateToken(user.ID, user.Role, user.Username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(fmt.Errorf("issue token: %w", err))
	}
	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return user, token, exp, nil
}

// Me returns the caller's own account.
func (s *IdentityService) Me(ctx context.Context, identity auth.Identity) (*domain.User, error) {
	if err := auth.Enforce(identity, anyRole...); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, identity.UserID)
}

// GetUser loads an account by id.
func (s *IdentityService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user", id)
	}
	return user, nil
}

// GetByUsername loads an account by username.
func (s *IdentityService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, storeError("load user", err)
	}
	return user, nil
}

// UserExists reports whether an account with id exists.
func (s *IdentityService) UserExists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return false, storeError("check user", err)
	}
	return exists, nil
}
