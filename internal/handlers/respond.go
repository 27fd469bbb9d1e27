package handlers

import (
	"fmt"

	"pasar/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForKind maps a structured error kind to an HTTP status. Handlers
// branch on kind, never on message text.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.InvalidInput:
		return fiber.StatusBadRequest
	case apperrors.NotFound:
		return fiber.StatusNotFound
	case apperrors.Forbidden:
		return fiber.StatusForbidden
	case apperrors.Conflict:
		return fiber.StatusConflict
	case apperrors.Unavailable, apperrors.InsufficientStock,
		apperrors.InvalidTransition, apperrors.InvalidState:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusForKind(apperrors.KindOf(err))).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func validationErrorResponse(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation errors",
		"errors":  errorMessages,
	})
}

func badRequestResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
