package scheduling

import (
	"time"

	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
)

// Resolve returns every appointment option with its slot template
// narrowed to the slots still free on the given date. The date is
// matched by string equality against stored bookings; an unparseable
// date simply matches nothing, so every slot reports free.
func Resolve(database *gorm.DB, date string) ([]models.AppointmentOption, error) {
	var options []models.AppointmentOption
	if err := database.Find(&options).Error; err != nil {
		return nil, err
	}

	var booked []models.Booking
	if err := database.Where("appointment_date = ?", date).Find(&booked).Error; err != nil {
		return nil, err
	}

	// Booked slots keyed by treatment, so narrowing each option is a
	// single pass over its template.
	taken := make(map[string]map[string]struct{}, len(booked))
	for _, b := range booked {
		slots, ok := taken[b.TreatmentName]
		if !ok {
			slots = make(map[string]struct{})
			taken[b.TreatmentName] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	for i := range options {
		slots, ok := taken[options[i].Name]
		if !ok {
			continue
		}
		remaining := make(models.SlotList, 0, len(options[i].Slots))
		for _, slot := range options[i].Slots {
			if _, booked := slots[slot]; !booked {
				remaining = append(remaining, slot)
			}
		}
		options[i].Slots = remaining
	}

	return options, nil
}

// Specialties returns the option names only, in storage order.
func Specialties(database *gorm.DB) ([]models.AppointmentOption, error) {
	var options []models.AppointmentOption
	err := database.Select("id", "name").Find(&options).Error
	return options, err
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD day. It is
// an optional hardening hook; the availability route deliberately does
// not apply it, keeping the pass-through equality semantics.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
