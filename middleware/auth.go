package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

// Secret returns the JWT signing secret.
func Secret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Protected admits requests carrying a valid bearer token and stores the
// claim email in Locals("email"). A missing Authorization header is
// Unauthorized; a present but invalid or expired token is Forbidden.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   Secret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}
			email, ok := claims["email"].(string)
			if !ok || email == "" {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "No email in token",
				})
			}
			c.Locals("email", email)
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.Contains(err.Error(), "missing or malformed") ||
		strings.Contains(err.Error(), "Missing or malformed") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "Forbidden",
		"message": "Invalid or expired token",
	})
}

// CallerEmail returns the identity attached by Protected.
func CallerEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}
