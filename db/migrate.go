package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
)

// Migrate applies the schema, including the composite unique indexes on
// bookings that back the conflict guard.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.AppointmentOption{},
		&models.Booking{},
		&models.Doctor{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations applied successfully")
	return nil
}
