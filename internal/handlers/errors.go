package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/brandforge/internal/middleware"
	"github.com/example/brandforge/internal/services"
	"github.com/example/brandforge/internal/utils"
)

// ErrorHandler renders every error returned by a handler or middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr utils.ValidationErrors
		pipelineErr   *services.Error
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": validationErr,
		})

	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})

	case errors.As(err, &pipelineErr):
		if pipelineErr.Code == services.CodeMissingAPIKey {
			log.Printf("[API] %s %s: integration not configured: %v", c.Method(), c.Path(), err)
		} else {
			log.Printf("[API] %s %s: %s: %v", c.Method(), c.Path(), pipelineErr.Code, pipelineErr.Err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"code":    pipelineErr.Code,
			"message": pipelineErr.Message,
		})

	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})

	default:
		log.Printf("[API] %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return uuid.Nil, services.ErrUnauthorized
	}
	return userID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
