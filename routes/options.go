package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctorsportal/server/controllers"
)

// SetupOptionRoutes configures the public appointment-option routes
func SetupOptionRoutes(app *fiber.App, oc *controllers.OptionController) {
	app.Get("/appointmentOptions", oc.GetAppointmentOptions)
	app.Get("/appointmentSpecialty", oc.GetSpecialties)
}
