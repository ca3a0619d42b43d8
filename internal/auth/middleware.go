package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the request-scoped projection of a verified token. The zero
// value is the anonymous caller.
type Identity struct {
	UserID        int64
	Role          domain.Role
	Subject       string
	Authenticated bool
}

// Anonymous is attached when no valid token was presented.
var Anonymous = Identity{}

// FailureRecorder receives authentication failures for diagnostics.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware verifies bearer tokens and attaches an Identity to every
// request. It never rejects: protected routes deny anonymous callers at the
// authorization step.
type AuthMiddleware struct {
	tokens   *TokenManager
	logger   *zap.Logger
	recorder FailureRecorder
}

// NewAuthMiddleware constructs middleware. recorder may be nil.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger, recorder FailureRecorder) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger, recorder: recorder}
}

// Handle resolves the caller identity and continues the chain.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	c.Locals(identityKey, m.resolve(c.Get(fiber.HeaderAuthorization), c.Path()))
	return c.Next()
}

func (m *AuthMiddleware) resolve(authHeader, path string) Identity {
	if authHeader == "" {
		return Anonymous
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		m.recordFailure("malformed_header", path, nil)
		return Anonymous
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		m.recordFailure(failureReason(err), path, err)
		return Anonymous
	}

	return Identity{
		UserID:        claims.UserID,
		Role:          claims.Role,
		Subject:       claims.Subject,
		Authenticated: true,
	}
}

func (m *AuthMiddleware) recordFailure(reason, path string, err error) {
	m.logger.Debug("authentication failed; continuing anonymously",
		zap.String("reason", reason),
		zap.String("path", path),
		zap.Error(err))
	if m.recorder != nil {
		m.recorder.RecordAuthFailure(reason)
	}
}

func failureReason(err error) string {
	switch err {
	case ErrExpired:
		return "expired"
	case ErrInvalidSignature:
		return "invalid_signature"
	default:
		return "malformed"
	}
}

// IdentityFromContext retrieves the caller identity. Requests that did not
// pass through the middleware are anonymous.
func IdentityFromContext(c *fiber.Ctx) Identity {
	identity, ok := c.Locals(identityKey).(Identity)
	if !ok {
		return Anonymous
	}
	return identity
}
