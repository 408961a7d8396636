package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
)

// RequireSelf allows a request through only when the email it targets
// (query parameter "email") matches the authenticated caller. Must run
// after Protected.
func RequireSelf() fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := c.Query("email")
		if target == "" {
			target = c.Params("email")
		}
		if target != CallerEmail(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}

// RequireAdmin resolves the caller's stored role and rejects non-admins.
// Every admin-gated route shares this one lookup. Must run after
// Protected.
func RequireAdmin(database *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		err := database.Where("email = ?", CallerEmail(c)).First(&user).Error
		if err != nil || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}
