package domain

import "time"

// Reminder is a pending email to the patient ahead of an appointment.
type Reminder struct {
	ID            string
	AppointmentID string
	DueAt         time.Time
	SentAt        *time.Time
	CreatedAt     time.Time
}
