package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctorsportal/server/controllers"
	"github.com/doctorsportal/server/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App, bc *controllers.BookingController) {
	booking := app.Group("/bookings")
	booking.Get("/", middleware.Protected(), middleware.RequireSelf(), bc.GetBookings)
	booking.Post("/", bc.CreateBooking)
	booking.Get("/:id", middleware.Protected(), bc.GetBooking)
}
