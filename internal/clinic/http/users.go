package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/service"
	"github.com/aussiebroadwan/neurohealth/pkg/clinicsdk"
	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

// UsersHandler handles the /usuarios endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister handles POST /usuarios/registro
//
//	@Summary		Register User
//	@Description	Creates a patient or specialist account and sends a welcome email. The role defaults to "usuario".
//	@Tags			Usuarios
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.RegisterRequest	true	"Account data"
//	@Success		201		{object}	clinicsdk.User				"Created user"
//	@Failure		400		{string}	string						"Validation message"
//	@Failure		429		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router			/usuarios/registro [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	u, err := h.UserService.Register(r.Context(), service.RegisterInput{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Email:      req.Email,
		Contrasena: req.Contrasena,
		Rol:        domain.Role(req.Rol),
	})
	if err != nil {
		writeError(w, r, err, "Failed to register user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleLogin handles POST /usuarios/login
//
//	@Summary		Login
//	@Description	Checks an email and password. Credentials may be sent as query parameters or as a form body.
//	@Tags			Usuarios
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		query		string					true	"Email"
//	@Param			contrasena	query		string					true	"Password"
//	@Success		200			{object}	clinicsdk.User			"Authenticated user"
//	@Failure		401			{string}	string					"Wrong email or password (empty body)"
//	@Failure		429			{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router			/usuarios/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("contrasena")

	u, ok, err := h.UserService.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, r, err, "Failed to log in")
		return
	}
	if !ok {
		httpx.WriteEmpty(w, http.StatusUnauthorized)
		return
	}

	slogx.FromContext(r.Context()).Info("login succeeded", slog.String("user_id", u.ID))
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleList handles GET /usuarios
//
//	@Summary	List Users
//	@Tags		Usuarios
//	@Produce	json
//	@Success	200	{array}		clinicsdk.User			"All users"
//	@Failure	500	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router		/usuarios [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to list users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUsers(users))
}

// HandleSpecialists handles GET /usuarios/especialistas
//
//	@Summary	List Specialists
//	@Tags		Usuarios
//	@Produce	json
//	@Success	200	{array}		clinicsdk.User			"Users with role especialista"
//	@Failure	500	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router		/usuarios/especialistas [get].
func (h *UsersHandler) HandleSpecialists(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListSpecialists(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to list specialists")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUsers(users))
}

// HandleGet handles GET /usuarios/{id}
//
//	@Summary	Get User
//	@Tags		Usuarios
//	@Produce	json
//	@Param		id	path		string					true	"User ID"
//	@Success	200	{object}	clinicsdk.User			"User"
//	@Failure	404	{string}	string					"Usuario no encontrado con ID: {id}"
//	@Failure	500	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router		/usuarios/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeLookupError(w, r, &service.NotFoundError{Entity: service.EntityUser, ID: id}, "")
		return
	}

	u, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, "Failed to get user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

func toUser(u domain.User) clinicsdk.User {
	return clinicsdk.User{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Email:    u.Email,
		Rol:      string(u.Rol),
	}
}

func toUsers(users []domain.User) []clinicsdk.User {
	out := make([]clinicsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	return out
}
