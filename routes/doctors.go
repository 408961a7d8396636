package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/controllers"
	"github.com/doctorsportal/server/middleware"
)

// SetupDoctorRoutes configures the admin-gated doctor routes
func SetupDoctorRoutes(app *fiber.App, dc *controllers.DoctorController, database *gorm.DB) {
	doctors := app.Group("/doctors", middleware.Protected(), middleware.RequireAdmin(database))
	doctors.Get("/", dc.GetDoctors)
	doctors.Post("/", dc.CreateDoctor)
	doctors.Delete("/:id", dc.DeleteDoctor)
}
