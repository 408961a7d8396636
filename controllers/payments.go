package controllers

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
	"github.com/doctorsportal/server/utils"
)

type PaymentController struct {
	DB        *gorm.DB
	ClientURL string
}

func NewPaymentController(database *gorm.DB) *PaymentController {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:3000"
	}
	return &PaymentController{DB: database, ClientURL: clientURL}
}

type checkoutItem struct {
	Treatment string `json:"treatment"`
	Quantity  int64  `json:"quantity"`
}

type checkoutRequest struct {
	Items []checkoutItem `json:"items"`
}

// CreateCheckoutSession builds a Stripe Checkout session for the
// requested treatments. Every failure while building line items is an
// explicit error; the handler never answers with a placeholder URL.
func (pc *PaymentController) CreateCheckoutSession(c *fiber.Ctx) error {
	req := new(checkoutRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No items to pay for",
		})
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		var option models.AppointmentOption
		err := pc.DB.Where("name = ?", item.Treatment).First(&option).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown treatment: " + item.Treatment,
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to price items",
				Error:   err.Error(),
			})
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(option.Name),
				},
				UnitAmount: stripe.Int64(int64(option.Price * 100)),
			},
			Quantity: stripe.Int64(quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(pc.ClientURL + "/dashboard/payment/success"),
		CancelURL:          stripe.String(pc.ClientURL + "/dashboard/payment/cancel"),
	}

	s, err := session.New(params)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to create checkout session",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"url": s.URL,
	})
}
