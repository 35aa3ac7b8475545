package clinicsdk

// ErrorResponse is the JSON body of a 5xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// User never carries the password hash.
type User struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

type RegisterRequest struct {
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`

	// Rol defaults to "usuario" when empty.
	Rol string `json:"rol,omitempty"`
}

type CreateAppointmentRequest struct {
	UsuarioID      string `json:"usuarioId"`
	EspecialistaID string `json:"especialistaId"`
	Fecha          string `json:"fecha"` // YYYY-MM-DD
	Hora           string `json:"hora"`  // HH:MM
}

type Appointment struct {
	ID             string `json:"id"`
	UsuarioID      string `json:"usuarioId"`
	EspecialistaID string `json:"especialistaId"`
	Fecha          string `json:"fecha"`
	Hora           string `json:"hora"`
}

// AppointmentDetail is an appointment with display names. Exactly one of
// Usuario and PacienteNombre is set.
type AppointmentDetail struct {
	Appointment

	Usuario            *string `json:"usuario,omitempty"`
	PacienteNombre     *string `json:"pacienteNombre,omitempty"`
	EspecialistaNombre string  `json:"especialistaNombre"`
	Estado             string  `json:"estado"`
}

// PatientName returns the patient's display name whichever key carried it.
func (d AppointmentDetail) PatientName() string {
	switch {
	case d.Usuario != nil:
		return *d.Usuario
	case d.PacienteNombre != nil:
		return *d.PacienteNombre
	}
	return ""
}

// NewAppointmentDetail places patientName under the key the listing contract
// expects for a.
func NewAppointmentDetail(a Appointment, patientName, specialistName, estado string) AppointmentDetail {
	d := AppointmentDetail{
		Appointment:        a,
		EspecialistaNombre: specialistName,
		Estado:             estado,
	}
	if a.EspecialistaID != "" {
		d.Usuario = &patientName
	} else {
		d.PacienteNombre = &patientName
	}
	return d
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is only present on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
