package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/service"
)

// IdentityHandler exposes account endpoints.
type IdentityHandler struct {
	identity *service.IdentityService
}

// NewIdentityHandler constructs handler.
func NewIdentityHandler(identity *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// Register handles POST /api/auth/register.
func (h *IdentityHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	user, err := h.identity.Register(c.UserContext(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /api/auth/login.
func (h *IdentityHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	user, token, exp, err := h.identity.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.NewUserResponse(user),
	})
}

// Me handles GET /api/auth/me.
func (h *IdentityHandler) Me(c *fiber.Ctx) error {
	user, err := h.identity.Me(c.UserContext(), auth.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// GetUser handles GET /api/users/:id.
func (h *IdentityHandler) GetUser(c *fiber.Ctx) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	user, err := h.identity.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// GetByUsername handles GET /api/users/username/:username.
func (h *IdentityHandler) GetByUsername(c *fiber.Ctx) error {
	user, err := h.identity.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// Validate handles GET /api/users/validate/:userId and answers with a bare boolean.
func (h *IdentityHandler) Validate(c *fiber.Ctx) error {
	id, err := int64Param(c, "userId")
	if err != nil {
		return err
	}
	exists, err := h.identity.UserExists(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(exists)
}
