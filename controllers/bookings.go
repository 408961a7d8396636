package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/cache"
	"github.com/doctorsportal/server/models"
	"github.com/doctorsportal/server/scheduling"
	"github.com/doctorsportal/server/utils"
)

type BookingController struct {
	DB     *gorm.DB
	Cache  *cache.Availability
	Mailer *utils.Mailer
}

func NewBookingController(database *gorm.DB, availability *cache.Availability, mailer *utils.Mailer) *BookingController {
	return &BookingController{DB: database, Cache: availability, Mailer: mailer}
}

// GetBookings lists the bookings held by an email. Route-level
// middleware guarantees the caller owns that email.
func (bc *BookingController) GetBookings(c *fiber.Ctx) error {
	email := c.Query("email")
	var bookings []models.Booking
	if err := bc.DB.Where("email = ?", email).Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}
	return c.JSON(bookings)
}

// CreateBooking reserves a slot through the conflict guard.
func (bc *BookingController) CreateBooking(c *fiber.Ctx) error {
	booking := new(models.Booking)
	if err := c.BodyParser(booking); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if booking.Email == "" || booking.AppointmentDate == "" || booking.TreatmentName == "" || booking.Slot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	err := scheduling.Reserve(bc.DB, booking)
	var conflict *scheduling.ConflictError
	switch {
	case err == nil:
	case errors.Is(err, scheduling.ErrUnknownTreatment):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown treatment",
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"acknowledged": false,
			"message":      conflict.Message,
		})
	case errors.Is(err, scheduling.ErrSlotTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"acknowledged": false,
			"message":      err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	bc.Cache.Invalidate(c.Context(), booking.AppointmentDate)
	bc.sendConfirmation(booking)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"acknowledged": true,
		"insertedId":   booking.ID,
		"booking":      booking,
	})
}

// GetBooking fetches one booking by id.
func (bc *BookingController) GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(booking)
}

func (bc *BookingController) sendConfirmation(booking *models.Booking) {
	subject := fmt.Sprintf("Your appointment for %s is confirmed", booking.TreatmentName)
	body := fmt.Sprintf(`
		<h3>Your appointment is confirmed</h3>
		<p>Treatment: %s</p>
		<p>Date: %s</p>
		<p>Slot: %s</p>
		<p>Reference: %s</p>
	`, booking.TreatmentName, booking.AppointmentDate, booking.Slot, booking.Ref)

	if err := bc.Mailer.Send(booking.Email, subject, body); err != nil {
		log.Printf("Failed to send confirmation for booking %d: %v", booking.ID, err)
	}
}
