package models

import (
	"gorm.io/gorm"
)

// Booking is one accepted reservation. The two composite unique indexes
// are load-bearing: they are what makes concurrent reservation attempts
// for the same requester or the same slot collapse to a single winner.
type Booking struct {
	gorm.Model
	Ref             string  `json:"ref" gorm:"unique"`
	PatientName     string  `json:"patient_name"`
	Email           string  `json:"email" gorm:"uniqueIndex:idx_booking_requester"`
	Phone           string  `json:"phone"`
	AppointmentDate string  `json:"appointment_date" gorm:"uniqueIndex:idx_booking_requester;uniqueIndex:idx_booking_slot"`
	TreatmentName   string  `json:"treatment_name" gorm:"uniqueIndex:idx_booking_requester;uniqueIndex:idx_booking_slot"`
	Slot            string  `json:"slot" gorm:"uniqueIndex:idx_booking_slot"`
	Price           float64 `json:"price"`
}
