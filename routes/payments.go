package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctorsportal/server/controllers"
)

// SetupPaymentRoutes configures the checkout route
func SetupPaymentRoutes(app *fiber.App, pc *controllers.PaymentController) {
	app.Post("/create-checkout-session", pc.CreateCheckoutSession)
}
