package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
)

// RoleChecker resolves a caller's role in a slug-addressed company.
type RoleChecker interface {
	HasRoleBySlug(ctx context.Context, userID uuid.UUID, slug string, required models.Role) (bool, error)
}

// RequireCompanyRole lets the request through only when the caller holds at
// least minRole in the company named by the :slug route parameter. Must run
// after AuthMiddleware.
func RequireCompanyRole(checker RoleChecker, minRole models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			return services.ErrUnauthorized
		}

		allowed, err := checker.HasRoleBySlug(c.UserContext(), userID, c.Params("slug"), minRole)
		if err != nil {
			return err
		}
		if !allowed {
			return services.ErrUnauthorized
		}

		return c.Next()
	}
}
