/*
Package clinicsdk is a typed client for the NeuroHealth clinic service, and the
home of its JSON wire types. The server encodes the same structs it documents
here, so the client and the handlers cannot drift apart.

# Usage

	client := clinicsdk.NewClient("http://localhost:8080")

	user, err := client.Register(ctx, clinicsdk.RegisterRequest{
		Nombre:     "Ana",
		Apellido:   "Ruiz",
		Email:      "ana@example.com",
		Contrasena: "secreto",
	})

	user, err = client.Login(ctx, "ana@example.com", "secreto")
	if errors.Is(err, clinicsdk.ErrUnauthenticated) {
		// wrong email or password
	}

	cita, err := client.CreateAppointment(ctx, clinicsdk.CreateAppointmentRequest{
		UsuarioID:      user.ID,
		EspecialistaID: specialistID,
		Fecha:          "2024-05-01",
		Hora:           "10:00",
	})

# Errors

Business rule violations (unknown user or specialist, invalid or duplicate
input) come back as *APIError with StatusCode 400 and the server's message.
Server failures come back as *APIError with Code "server_error".

# Listing shape

Enriched listings carry the patient's display name under "usuario" when the
appointment has a specialist and under "pacienteNombre" otherwise. Use
AppointmentDetail.PatientName to read it regardless of the key.
*/
package clinicsdk
