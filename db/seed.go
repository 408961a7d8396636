package db

import (
	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
)

var defaultOptions = []models.AppointmentOption{
	{Name: "Teeth Orthodontics", Price: 80, Slots: models.SlotList{
		"8.00 AM - 8.30 AM", "8.30 AM - 9.00 AM", "9.00 AM - 9.30 AM",
		"9.30 AM - 10.00 AM", "10.00 AM - 10.30 AM", "10.30 AM - 11.00 AM",
	}},
	{Name: "Cosmetic Dentistry", Price: 120, Slots: models.SlotList{
		"8.00 AM - 8.30 AM", "8.30 AM - 9.00 AM", "9.00 AM - 9.30 AM",
		"9.30 AM - 10.00 AM", "10.00 AM - 10.30 AM",
	}},
	{Name: "Teeth Cleaning", Price: 60, Slots: models.SlotList{
		"9.00 AM - 9.30 AM", "9.30 AM - 10.00 AM", "10.00 AM - 10.30 AM",
		"10.30 AM - 11.00 AM", "11.00 AM - 11.30 AM",
	}},
	{Name: "Cavity Protection", Price: 90, Slots: models.SlotList{
		"10.00 AM - 10.30 AM", "10.30 AM - 11.00 AM", "11.00 AM - 11.30 AM",
	}},
	{Name: "Oral Surgery", Price: 250, Slots: models.SlotList{
		"1.00 PM - 1.30 PM", "1.30 PM - 2.00 PM", "2.00 PM - 2.30 PM",
	}},
}

// Seed inserts the master appointment-option templates when the table is
// empty. Existing templates are left untouched.
func Seed(database *gorm.DB) error {
	var count int64
	if err := database.Model(&models.AppointmentOption{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return database.Create(&defaultOptions).Error
}
