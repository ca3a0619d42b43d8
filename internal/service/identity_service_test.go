package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

func newIdentityFixture() (*IdentityService, *memUsers, *auth.TokenManager) {
	users := newMemUsers()
	tokens := auth.NewTokenManager("test-secret", 30)
	return NewIdentityService(users, tokens, bcrypt.MinCost, nil), users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, tokens := newIdentityFixture()

	user, err := svc.Register(context.Background(), " alice ", "alice@example.com", "s3cret!", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RolePatient, user.Role)
	assert.NotEqual(t, "s3cret!", users.byID[user.ID].PasswordHash)

	_, err = svc.Register(context.Background(), "alice", "", "another", "DOCTOR")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	logged, token, exp, err := svc.Login(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.False(t, exp.IsZero())

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RolePatient, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newIdentityFixture()
	_, err := svc.Register(context.Background(), "bob", "", "password1", "doctor")
	require.NoError(t, err)

	_, _, _, wrongPassword := svc.Login(context.Background(), "bob", "nope")
	_, _, _, unknownUser := svc.Login(context.Background(), "nobody", "nope")
	assert.Equal(t, apperrors.ToDomainError(wrongPassword), apperrors.ToDomainError(unknownUser))
	assert.True(t, apperrors.HasCode(wrongPassword, apperrors.CodeUnauthorized))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newIdentityFixture()
	_, err := svc.Register(context.Background(), "carol", "", "password1", "NURSE")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestUserLookups(t *testing.T) {
	svc, _, _ := newIdentityFixture()
	user, err := svc.Register(context.Background(), "dave", "", "password1", "DOCTOR")
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), doctor(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "dave", me.Username)

	_, err = svc.Me(context.Background(), auth.Anonymous)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	byName, err := svc.GetByUsername(context.Background(), "dave")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = svc.GetUser(context.Background(), user.ID+1)
	assert.Equal(t, "user not found", apperrors.ToDomainError(err).Message)

	exists, err := svc.UserExists(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = svc.UserExists(context.Background(), user.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterDuplicateCaughtByStoreIsConflict(t *testing.T) {
	users := newMemUsers()
	svc := NewIdentityService(racingUsers{users}, auth.NewTokenManager("test-secret", 30), bcrypt.MinCost, nil)

	first, err := svc.Register(context.Background(), "dana", "", "password1", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "dana", "", "password2", "")
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeConflict, de.Code)
	assert.Equal(t, "username already taken", de.Message)
	assert.Len(t, users.byID, 1)
	assert.Equal(t, first.PasswordHash, users.byID[first.ID].PasswordHash)
}
