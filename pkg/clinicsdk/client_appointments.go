package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateAppointment books an appointment. An unknown user or specialist is an
// *APIError with StatusCode 400 whose Message names the missing id.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/citas", req)
	if err != nil {
		return nil, err
	}

	var appt Appointment
	if err := decodeJSON(resp, &appt, http.StatusCreated); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/citas/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var appt Appointment
	if err := decodeJSON(resp, &appt, http.StatusOK); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	return getList[AppointmentDetail](ctx, c, "/citas")
}

func (c *Client) ListAppointmentsByUser(ctx context.Context, userID string) ([]Appointment, error) {
	return getList[Appointment](ctx, c, "/citas/usuario/"+url.PathEscape(userID))
}

func (c *Client) ListAppointmentsBySpecialist(ctx context.Context, specialistID string) ([]AppointmentDetail, error) {
	return getList[AppointmentDetail](ctx, c, "/citas/especialista/"+url.PathEscape(specialistID))
}
