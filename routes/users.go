package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/controllers"
	"github.com/doctorsportal/server/middleware"
)

// SetupUserRoutes configures user and token related routes
func SetupUserRoutes(app *fiber.App, uc *controllers.UserController, database *gorm.DB) {
	app.Get("/jwt", uc.IssueToken)

	users := app.Group("/users")
	users.Get("/", middleware.Protected(), middleware.RequireAdmin(database), uc.GetUsers)
	users.Post("/", uc.CreateUser)
	users.Put("/admin/:id", middleware.Protected(), middleware.RequireAdmin(database), uc.PromoteUser)
	users.Get("/admin/:email", uc.CheckAdmin)
}
