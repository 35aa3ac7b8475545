package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/service"
	"github.com/aussiebroadwan/neurohealth/pkg/clinicsdk"
	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
)

// AppointmentsHandler handles the /citas endpoints.
type AppointmentsHandler struct {
	AppointmentService *service.AppointmentService
}

// HandleCreate handles POST /citas
//
//	@Summary		Book Appointment
//	@Description	Books an appointment between an existing patient and an existing specialist, schedules a reminder and sends a confirmation email.
//	@Description	A failed confirmation email does not fail the booking.
//	@Tags			Citas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.CreateAppointmentRequest	true	"Appointment"
//	@Success		201		{object}	clinicsdk.Appointment				"Booked appointment"
//	@Failure		400		{string}	string								"Usuario no encontrado con ID: {id}"
//	@Failure		429		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Router			/citas [post].
func (h *AppointmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	appt, err := h.AppointmentService.CreateAppointment(r.Context(),
		req.UsuarioID,
		req.EspecialistaID,
		req.Fecha,
		req.Hora,
	)
	if err != nil {
		writeError(w, r, err, "Failed to create appointment")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAppointment(appt))
}

// HandleList handles GET /citas
//
//	@Summary		List Appointments
//	@Description	Every appointment with the patient and specialist names and the status "Activo".
//	@Description	The patient name is under "usuario" when the appointment has a specialist, otherwise under "pacienteNombre".
//	@Tags			Citas
//	@Produce		json
//	@Success		200	{array}		clinicsdk.AppointmentDetail	"Appointments"
//	@Failure		500	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router			/citas [get].
func (h *AppointmentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	details, err := h.AppointmentService.ListAppointments(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to list appointments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDetails(details))
}

// HandleGet handles GET /citas/{id}
//
//	@Summary	Get Appointment
//	@Tags		Citas
//	@Produce	json
//	@Param		id	path		string					true	"Appointment ID"
//	@Success	200	{object}	clinicsdk.Appointment	"Appointment"
//	@Failure	404	{string}	string					"Cita no encontrado con ID: {id}"
//	@Failure	500	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router		/citas/{id} [get].
func (h *AppointmentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeLookupError(w, r, &service.NotFoundError{Entity: service.EntityAppointment, ID: id}, "")
		return
	}

	appt, err := h.AppointmentService.GetAppointment(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, "Failed to get appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointment(appt))
}

// HandleListByUser handles GET /citas/usuario/{id}
//
//	@Summary	List Patient Appointments
//	@Tags		Citas
//	@Produce	json
//	@Param		id	path		string					true	"Patient ID"
//	@Success	200	{array}		clinicsdk.Appointment	"Appointments as stored"
//	@Failure	500	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router		/citas/usuario/{id} [get].
func (h *AppointmentsHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	appts, err := h.AppointmentService.ListAppointmentsByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "Failed to list appointments")
		return
	}

	out := make([]clinicsdk.Appointment, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointment(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleListBySpecialist handles GET /citas/especialista/{id}
//
//	@Summary	List Specialist Appointments
//	@Tags		Citas
//	@Produce	json
//	@Param		id	path		string						true	"Specialist ID"
//	@Success	200	{array}		clinicsdk.AppointmentDetail	"Appointments with names"
//	@Failure	500	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router		/citas/especialista/{id} [get].
func (h *AppointmentsHandler) HandleListBySpecialist(w http.ResponseWriter, r *http.Request) {
	details, err := h.AppointmentService.ListAppointmentsBySpecialist(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "Failed to list appointments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDetails(details))
}

func toAppointment(a domain.Appointment) clinicsdk.Appointment {
	return clinicsdk.Appointment{
		ID:             a.ID,
		UsuarioID:      a.UsuarioID,
		EspecialistaID: a.EspecialistaID,
		Fecha:          a.Fecha,
		Hora:           a.Hora,
	}
}

func toDetails(details []domain.AppointmentDetail) []clinicsdk.AppointmentDetail {
	out := make([]clinicsdk.AppointmentDetail, 0, len(details))
	for _, d := range details {
		out = append(out, clinicsdk.NewAppointmentDetail(
			toAppointment(d.Appointment),
			d.PatientName,
			d.SpecialistName,
			d.Estado,
		))
	}
	return out
}
