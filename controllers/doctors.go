package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
	"github.com/doctorsportal/server/utils"
)

type DoctorController struct {
	DB       *gorm.DB
	Uploader *utils.Uploader
}

func NewDoctorController(database *gorm.DB, uploader *utils.Uploader) *DoctorController {
	return &DoctorController{DB: database, Uploader: uploader}
}

// GetDoctors lists doctors, newest first. Admin only.
func (dc *DoctorController) GetDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := dc.DB.Order("id desc").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// CreateDoctor adds a doctor. A multipart "image" file, when present and
// Cloudinary is configured, replaces any image URL in the body.
func (dc *DoctorController) CreateDoctor(c *fiber.Ctx) error {
	doctor := new(models.Doctor)
	if err := c.BodyParser(doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}
	if doctor.Name == "" || doctor.Specialty == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		url, err := dc.Uploader.UploadImage(c.Context(), file)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
				Message: "Failed to upload doctor image",
				Error:   err.Error(),
			})
		}
		if url != "" {
			doctor.ImageURL = url
		}
	}

	if err := dc.DB.Create(doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// DeleteDoctor removes a doctor by id. Admin only.
func (dc *DoctorController) DeleteDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	result := dc.DB.Where("id = ?", id).Delete(&models.Doctor{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete doctor",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
