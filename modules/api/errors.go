package api

import (
	"errors"

	"github.com/example/task-manager/domain/apperr"
	"github.com/gofiber/fiber/v2"
)

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Task not found",
	})
}

// handleError maps store error kinds to HTTP responses. Persistence and
// unknown errors are logged and reported without detail.
func (h *Handlers) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNoFieldsProvided):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   apperr.CodeNoFieldsProvided,
			Message: "No fields provided to update",
		})
	case errors.Is(err, apperr.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   apperr.CodeValidation,
			Message: err.Error(),
		})
	case errors.Is(err, apperr.ErrDuplicateUsername):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   apperr.CodeDuplicateUsername,
			Message: "Username already exists",
		})
	case errors.Is(err, apperr.ErrUserNotFound), errors.Is(err, apperr.ErrInvalidCredentials):
		// Same message for both so usernames cannot be probed.
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid username or password",
		})
	case errors.Is(err, apperr.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired token",
		})
	case errors.Is(err, apperr.ErrNotFound):
		return notFound(c)
	default:
		h.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
