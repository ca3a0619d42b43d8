package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"unauthenticated", NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbidden("forbidden"), CodeForbidden, http.StatusForbidden},
		{"not found", NewNotFound("doctor", nil), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("profile already exists", nil), CodeConflict, http.StatusConflict},
		{"wrapped forbidden", fmt.Errorf("update: %w", NewForbidden("nope")), CodeForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			require.NotNil(t, de)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}
}

func TestToDomainErrorUnclassifiedIsInternal(t *testing.T) {
	de := ToDomainError(errors.New("json: cannot unmarshal"))
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "internal server error", de.Message)
}

func TestToDomainErrorMapsFiberErrors(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
	assert.Equal(t, CodeValidationFailed, de.Code)
	assert.Equal(t, "invalid payload", de.Message)

	de = ToDomainError(fiber.ErrNotFound)
	assert.Equal(t, CodeNotFound, de.Code)

	de = ToDomainError(fiber.ErrBadGateway)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(fmt.Errorf("x: %w", NewConflict("dup", nil)), CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))
	assert.Nil(t, ToDomainError(nil))
}
