package clinicsdk

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestNewClientTrimsSlash(t *testing.T) {
	t.Parallel()

	c := NewClient("http://clinic.local/")
	require.Equal(t, "http://clinic.local/citas", c.url("/citas"))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/usuarios/registro", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ana@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Nombre: req.Nombre, Email: req.Email, Rol: "usuario"})
	})

	user, err := c.Register(t.Context(), RegisterRequest{Nombre: "Ana", Email: "ana@example.com", Contrasena: "x"})
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "usuario", user.Rol)
}

func TestRegisterValidationError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "El email ya está registrado")
	})

	_, err := c.Register(t.Context(), RegisterRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, ErrorCodeBadRequest, apiErr.Code)
	require.Equal(t, "El email ya está registrado", apiErr.Message)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/usuarios/login", r.URL.Path)
		if r.URL.Query().Get("contrasena") != "secreto" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: r.URL.Query().Get("email")})
	})

	user, err := c.Login(t.Context(), "ana@example.com", "secreto")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)

	_, err = c.Login(t.Context(), "ana@example.com", "wrong")
	require.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestServerErrorJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeServerError, ErrorDescription: "database unavailable"})
	})

	_, err := c.ListUsers(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, "database unavailable", apiErr.Message)
}

func TestNotFoundWithoutBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/citas/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetAppointment(t.Context(), "a/b")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeNotFound, apiErr.Code)
	require.Equal(t, "Not Found", apiErr.Message)
}

func TestListAppointmentsKeyNaming(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":"c1","usuarioId":"u1","especialistaId":"s1","fecha":"2024-05-01","hora":"10:00","usuario":"Ana Ruiz","especialistaNombre":"Luis Mora","estado":"Activo"},
			{"id":"c2","usuarioId":"u1","especialistaId":"","fecha":"2024-05-02","hora":"11:00","pacienteNombre":"Ana Ruiz","especialistaNombre":" ","estado":"Activo"}
		]`)
	})

	list, err := c.ListAppointments(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NotNil(t, list[0].Usuario)
	require.Nil(t, list[0].PacienteNombre)
	require.Equal(t, "Ana Ruiz", list[0].PatientName())
	require.Equal(t, "Luis Mora", list[0].EspecialistaNombre)

	require.Nil(t, list[1].Usuario)
	require.Equal(t, "Ana Ruiz", list[1].PatientName())
}

func TestNewAppointmentDetailEncoding(t *testing.T) {
	t.Parallel()

	withSpecialist := NewAppointmentDetail(Appointment{ID: "c1", EspecialistaID: "s1"}, "Ana Ruiz", "Luis Mora", "Activo")
	raw, err := json.Marshal(withSpecialist)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, "Ana Ruiz", m["usuario"])
	require.NotContains(t, m, "pacienteNombre")
	require.Equal(t, "Activo", m["estado"])

	without := NewAppointmentDetail(Appointment{ID: "c2"}, "Ana Ruiz", " ", "Activo")
	raw, err = json.Marshal(without)
	require.NoError(t, err)

	m = nil
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, "Ana Ruiz", m["pacienteNombre"])
	require.NotContains(t, m, "usuario")
}

func TestHealth(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := HealthResponse{Status: "ok", Version: "test"}
		if r.URL.Path == "/readyz" {
			resp.Checks = &HealthChecks{Database: "ok"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	live, err := c.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Nil(t, live.Checks)

	ready, err := c.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
}
