package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-services/internal/domain"
)

type countingRecorder struct {
	reasons []string
}

func (r *countingRecorder) RecordAuthFailure(reason string) {
	r.reasons = append(r.reasons, reason)
}

func newGateApp(tm *TokenManager, recorder FailureRecorder) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(tm, nil, recorder).Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(IdentityFromContext(c))
	})
	return app
}

func callWhoami(t *testing.T, app *fiber.App, header string) Identity {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "gate must never reject")

	var identity Identity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	return identity
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	clock := &fakeClock{t: time.Now().Truncate(time.Second)}
	tm := newTestManager(clock)
	token, _, err := tm.GenerateToken(11, domain.RoleDoctor, "gregory")
	require.NoError(t, err)

	identity := callWhoami(t, newGateApp(tm, nil), "Bearer "+token)
	assert.True(t, identity.Authenticated)
	assert.Equal(t, int64(11), identity.UserID)
	assert.Equal(t, domain.RoleDoctor, identity.Role)
	assert.Equal(t, "gregory", identity.Subject)
}

func TestAuthMiddlewareDegradesToAnonymous(t *testing.T) {
	clock := &fakeClock{t: time.Now().Truncate(time.Second)}
	tm := newTestManager(clock)
	expired, _, err := NewTokenManager("test-secret", 1, WithClock(func() time.Time {
		return clock.t.Add(-2 * time.Hour)
	})).GenerateToken(1, domain.RolePatient, "old")
	require.NoError(t, err)
	foreign, _, err := NewTokenManager("someone-else", 30, WithClock(clock.Now)).GenerateToken(1, domain.RolePatient, "x")
	require.NoError(t, err)

	recorder := &countingRecorder{}
	app := newGateApp(tm, recorder)

	headers := map[string]string{
		"absent":            "",
		"no scheme":         "token-only",
		"wrong scheme":      "Basic dXNlcjpwYXNz",
		"empty bearer":      "Bearer ",
		"garbage":           "Bearer not.a.jwt",
		"expired":           "Bearer " + expired,
		"invalid signature": "Bearer " + foreign,
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			identity := callWhoami(t, app, header)
			assert.False(t, identity.Authenticated)
			assert.Zero(t, identity.UserID)
		})
	}

	assert.Len(t, recorder.reasons, len(headers)-1, "every failure except an absent header is recorded")
	assert.Contains(t, recorder.reasons, "expired")
	assert.Contains(t, recorder.reasons, "invalid_signature")
	assert.Contains(t, recorder.reasons, "malformed_header")
}

func TestIdentityFromContextWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Equal(t, Anonymous, IdentityFromContext(c))
		return c.SendStatus(http.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
