package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mdriyazakondo/book-curriter-server/internal/services"
)

// PrincipalKey is the locals key holding the verified principal email.
const PrincipalKey = "email"

// AuthRequired verifies the bearer token and stores the principal email in
// the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized Access!",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized Access!",
			})
		}

		email, _ := claims[PrincipalKey].(string)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized Access!",
			})
		}
		c.Locals(PrincipalKey, email)

		return c.Next()
	}
}

// Principal returns the verified email stored by AuthRequired.
func Principal(c *fiber.Ctx) string {
	email, _ := c.Locals(PrincipalKey).(string)
	return email
}
