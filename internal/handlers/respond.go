package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/furnistore/internal/apperr"
)

// httpError maps domain errors to HTTP responses. Anything unmapped is
// returned as-is and surfaces as an internal error.
func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidCode),
		errors.Is(err, apperr.ErrExpiredCode):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperr.ErrNotApproved),
		errors.Is(err, apperr.ErrNotVerified),
		errors.Is(err, apperr.ErrAccountDisabled),
		errors.Is(err, apperr.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrDuplicate):
		if field, ok := apperr.DuplicateField(err); ok && field != "" {
			return fiber.NewError(fiber.StatusConflict, field+" is already registered")
		}
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrAlreadyInState),
		errors.Is(err, apperr.ErrStaleState):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrDeliveryFailed):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return err
}
