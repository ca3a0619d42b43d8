package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-services/internal/api/dto"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// bindBody parses the request body (JSON or form) into req and validates it.
func bindBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}

// bindBodyOrQuery reads a form or JSON body when present and query
// parameters otherwise.
func bindBodyOrQuery(c *fiber.Ctx, req any) error {
	if len(c.Body()) > 0 {
		return bindBody(c, req)
	}
	if err := c.QueryParser(req); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	return dto.Validate(req)
}

func int64Param(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: c.Params(name)})
	}
	return id, nil
}

func int64Query(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: c.Query(name)})
	}
	return id, nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
