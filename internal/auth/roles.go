package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/domain"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow permits the operation.
var Allow = Decision{Allowed: true}

// Deny rejects the operation with a reason.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorize allows iff the identity is authenticated and its role is one of required.
func Authorize(identity Identity, required ...domain.Role) Decision {
	if !identity.Authenticated {
		return Deny("forbidden")
	}
	for _, role := range required {
		if identity.Role == role {
			return Allow
		}
	}
	return Deny("forbidden")
}

// Enforce evaluates Authorize and converts a deny into a boundary error:
// anonymous callers get UNAUTHORIZED, authenticated ones FORBIDDEN.
func Enforce(identity Identity, required ...domain.Role) error {
	decision := Authorize(identity, required...)
	if decision.Allowed {
		return nil
	}
	if !identity.Authenticated {
		return apperrors.NewUnauthorized("authentication required")
	}
	return apperrors.NewForbidden(decision.Reason)
}

// RequireRoles guards a route with a static role set.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	required := append([]domain.Role(nil), roles...)
	return func(c *fiber.Ctx) error {
		if err := Enforce(IdentityFromContext(c), required...); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures any verified identity is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IdentityFromContext(c).Authenticated {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
