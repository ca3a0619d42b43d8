package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-services/internal/domain"
)

var issuedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newTestManager(clock *fakeClock) *TokenManager {
	return NewTokenManager("test-secret", 30, WithClock(clock.Now))
}

func TestTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	cases := []struct {
		userID  int64
		role    domain.Role
		subject string
	}{
		{1, domain.RolePatient, "alice"},
		{42, domain.RoleDoctor, "dr.house"},
		{9001, domain.RoleAdmin, ""},
		{1 << 40, domain.RolePatient, "ünïcode user"},
	}

	for _, tc := range cases {
		token, exp, err := tm.GenerateToken(tc.userID, tc.role, tc.subject)
		require.NoError(t, err)
		assert.Equal(t, issuedAt.Add(30*time.Minute), exp)

		clock.t = issuedAt.Add(29 * time.Minute)
		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, tc.userID, claims.UserID)
		assert.Equal(t, tc.role, claims.Role)
		assert.Equal(t, tc.subject, claims.Subject)
		clock.t = issuedAt
	}
}

func TestTokenExpiration(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	token, exp, err := tm.GenerateToken(7, domain.RolePatient, "bob")
	require.NoError(t, err)

	clock.t = exp.Add(-time.Second)
	_, err = tm.ParseToken(token)
	assert.NoError(t, err, "one second before expiry must verify")

	clock.t = exp
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpired, "verification at expiry must fail")

	clock.t = exp.Add(time.Hour)
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenExpiryMatchesClaimWithSubSecondClock(t *testing.T) {
	clock := &fakeClock{t: issuedAt.Add(900 * time.Millisecond)}
	tm := newTestManager(clock)

	token, exp, err := tm.GenerateToken(7, domain.RolePatient, "bob")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(30*time.Minute), exp)

	clock.t = exp.Add(-500 * time.Millisecond)
	claims, err := tm.ParseToken(token)
	require.NoError(t, err, "token must verify until its reported expiry")
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))

	clock.t = exp
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenTamperedSignature(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	token, _, err := tm.GenerateToken(3, domain.RoleDoctor, "carol")
	require.NoError(t, err)

	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)
	sig, err := base64.RawURLEncoding.DecodeString(segments[2])
	require.NoError(t, err)

	for i := range sig {
		flipped := append([]byte(nil), sig...)
		flipped[i] ^= 0xFF
		tampered := segments[0] + "." + segments[1] + "." + base64.RawURLEncoding.EncodeToString(flipped)

		_, err := tm.ParseToken(tampered)
		assert.ErrorIs(t, err, ErrInvalidSignature, "byte %d", i)
	}
}

func TestTokenTamperedSignatureOnExpiredToken(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	token, exp, err := tm.GenerateToken(3, domain.RoleDoctor, "carol")
	require.NoError(t, err)
	clock.t = exp.Add(time.Minute)

	_, err = NewTokenManager("other-secret", 30, WithClock(clock.Now)).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenWrongSecret(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	token, _, err := newTestManager(clock).GenerateToken(5, domain.RolePatient, "dave")
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret", 30, WithClock(clock.Now)).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenMalformed(t *testing.T) {
	tm := newTestManager(&fakeClock{t: issuedAt})

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c", "####.####.####"} {
		_, err := tm.ParseToken(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	claims := &Claims{
		UserID: 1,
		Role:   domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenRequiresIdentityClaims(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	claims := &Claims{
		Role: domain.Role("NURSE"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrMalformed)
}
