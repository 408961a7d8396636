package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
	"github.com/doctorsportal/server/utils"
)

// StartReminderJob schedules a daily sweep that emails everyone holding
// a booking for the next day.
func StartReminderJob(database *gorm.DB, mailer *utils.Mailer) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("0 8 * * *", func() {
		sendReminders(database, mailer)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Println("Reminder job scheduled")
	return c, nil
}

func sendReminders(database *gorm.DB, mailer *utils.Mailer) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var bookings []models.Booking
	err := database.Where("appointment_date = ?", tomorrow).Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		subject := fmt.Sprintf("Reminder: %s appointment tomorrow", booking.TreatmentName)
		body := fmt.Sprintf(`
			<h3>Appointment reminder</h3>
			<p>Treatment: %s</p>
			<p>Date: %s</p>
			<p>Slot: %s</p>
		`, booking.TreatmentName, booking.AppointmentDate, booking.Slot)

		if err := mailer.Send(booking.Email, subject, body); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.Email)
	}
}
