package models

import "time"

// Appointment is one booked slot on a provider's schedule.
type Appointment struct {
	ID   string          `json:"id"`
	Date time.Time       `json:"date"`
	User AppointmentUser `json:"user"`
}

// AppointmentUser is the customer who booked the appointment.
type AppointmentUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// DayAvailability tells whether a day of a month still has free slots.
type DayAvailability struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}
