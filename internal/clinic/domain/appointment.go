package domain

import "time"

// StatusActive is the only status an appointment reports.
const StatusActive = "Activo"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Appointment struct {
	ID             string
	UsuarioID      string
	EspecialistaID string
	Fecha          string // YYYY-MM-DD
	Hora           string // HH:MM
	CreatedAt      time.Time
}

// HasSpecialist reports whether the appointment references a specialist.
// Rows written by this service always do; imported rows may not.
func (a Appointment) HasSpecialist() bool {
	return a.EspecialistaID != ""
}

// StartsAt resolves fecha and hora in loc.
func (a Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, a.Fecha+" "+a.Hora, loc)
}

// AppointmentDetail is an appointment enriched with display names for the
// listing endpoints.
type AppointmentDetail struct {
	Appointment
	PatientName    string
	SpecialistName string
	Estado         string
}
