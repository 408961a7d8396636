package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/cache"
	"github.com/doctorsportal/server/scheduling"
	"github.com/doctorsportal/server/utils"
)

type OptionController struct {
	DB    *gorm.DB
	Cache *cache.Availability
}

func NewOptionController(database *gorm.DB, availability *cache.Availability) *OptionController {
	return &OptionController{DB: database, Cache: availability}
}

// GetAppointmentOptions returns every treatment with the slots still
// free on the requested date.
func (oc *OptionController) GetAppointmentOptions(c *fiber.Ctx) error {
	date := c.Query("date")

	if options, ok := oc.Cache.Get(c.Context(), date); ok {
		return c.JSON(options)
	}

	options, err := scheduling.Resolve(oc.DB, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointment options",
			Error:   err.Error(),
		})
	}

	oc.Cache.Set(c.Context(), date, options)
	return c.JSON(options)
}

// GetSpecialties returns treatment names only.
func (oc *OptionController) GetSpecialties(c *fiber.Ctx) error {
	specialties, err := scheduling.Specialties(oc.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch specialties",
			Error:   err.Error(),
		})
	}
	return c.JSON(specialties)
}
