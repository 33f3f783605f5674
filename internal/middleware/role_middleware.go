package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/services"
)

// RequirePermission loads the caller's stored role and denies the request
// unless that role holds the given permission. The denial includes the
// caller's actual role. Must run after AuthRequired.
func RequirePermission(users *services.UserService, perm models.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := Principal(c)
		role, err := users.GetRole(email)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}
		if !role.Can(perm) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
				"role":    role,
			})
		}
		return c.Next()
	}
}
