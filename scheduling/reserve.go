package scheduling

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doctorsportal/server/models"
)

var (
	// ErrUnknownTreatment rejects bookings naming a treatment with no
	// master template.
	ErrUnknownTreatment = errors.New("unknown treatment")

	// ErrSlotTaken rejects a slot already held by another requester for
	// the same date and treatment.
	ErrSlotTaken = errors.New("slot is no longer available")
)

// ConflictError is a reservation rejection with a patient-facing message.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func alreadyBooked(date string) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf("You already have a booking on %s", date)}
}

// Reserve persists a booking if and only if neither the requester nor
// the slot already holds one for the (date, treatment) pair.
//
// The pre-check below only gives the friendly rejection on the common
// path. Two racing requests can both pass it, so the real guarantee is
// the pair of composite unique indexes on bookings: the insert either
// commits or fails with a duplicate-key error, and exactly one of two
// racing requests wins.
func Reserve(database *gorm.DB, booking *models.Booking) error {
	var option models.AppointmentOption
	err := database.Where("name = ?", booking.TreatmentName).First(&option).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnknownTreatment
	}
	if err != nil {
		return err
	}
	if !containsSlot(option.Slots, booking.Slot) {
		return &ConflictError{Message: fmt.Sprintf("slot %q is not offered for %s", booking.Slot, booking.TreatmentName)}
	}

	var existing int64
	err = database.Model(&models.Booking{}).
		Where("appointment_date = ? AND treatment_name = ? AND email = ?",
			booking.AppointmentDate, booking.TreatmentName, booking.Email).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return alreadyBooked(booking.AppointmentDate)
	}

	booking.Ref = uuid.NewString()
	booking.Price = option.Price
	err = database.Create(booking).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return translateDuplicate(database, booking)
	}
	return err
}

// translateDuplicate decides which invariant a duplicate-key failure
// tripped: if this requester now holds a booking for the pair it is the
// per-requester conflict, otherwise another requester took the slot.
func translateDuplicate(database *gorm.DB, booking *models.Booking) error {
	var mine int64
	err := database.Model(&models.Booking{}).
		Where("appointment_date = ? AND treatment_name = ? AND email = ?",
			booking.AppointmentDate, booking.TreatmentName, booking.Email).
		Count(&mine).Error
	if err == nil && mine > 0 {
		return alreadyBooked(booking.AppointmentDate)
	}
	return ErrSlotTaken
}

func containsSlot(slots models.SlotList, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
