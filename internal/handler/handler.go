package handler

import (
	"errors"

	"go-sales-inventory/internal/middleware"
	"go-sales-inventory/internal/service"
	"go-sales-inventory/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func currentActor(c *fiber.Ctx) service.Actor {
	user := middleware.CurrentUser(c)
	if user == nil {
		return service.Actor{ID: "system", Name: "System"}
	}
	return service.Actor{ID: user.ID, Name: user.Name, Email: user.Email}
}

// errorStatus maps service errors onto HTTP status codes. Unknown errors are
// internal.
func errorStatus(err error) int {
	switch {
	case service.IsSaleRejection(err),
		errors.Is(err, validator.ErrValidation),
		errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrLocationNotFound),
		errors.Is(err, service.ErrProductIDRequired),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrCannotDeleteSelf),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Internal errors are logged and hidden
// from the client.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

func namedLogger(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log.With(zap.String("handler", name))
}
