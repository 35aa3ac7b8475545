package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/notify"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/pkg/cryptox"
	"github.com/aussiebroadwan/neurohealth/pkg/idx"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

// PasswordHasher is implemented by cryptox.Hasher.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, encodedHash string) error
}

type UserService struct {
	Store    store.Store
	Hasher   PasswordHasher
	Notifier notify.Notifier
}

// RegisterInput is a registration request. Rol defaults to usuario.
type RegisterInput struct {
	Nombre     string
	Apellido   string
	Email      string
	Contrasena string
	Rol        domain.Role
}

func (in *RegisterInput) normalize() {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Email = domain.NormalizeEmail(in.Email)
	in.Rol = domain.Role(strings.ToLower(strings.TrimSpace(string(in.Rol))))
	if in.Rol == "" {
		in.Rol = domain.RolePatient
	}
}

func (in RegisterInput) validate() error {
	if in.Nombre == "" {
		return invalid("nombre", "El nombre es obligatorio")
	}
	if in.Email == "" {
		return invalid("email", "El email es obligatorio")
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return invalid("email", "El email no es válido: "+in.Email)
	}
	if in.Contrasena == "" {
		return invalid("contrasena", "La contraseña es obligatoria")
	}
	if !in.Rol.Valid() {
		return invalid("rol", "Rol no válido: "+string(in.Rol))
	}
	return nil
}

// Register creates a user and sends a welcome email. The email is best
// effort; registration succeeds even if it cannot be sent.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	in.normalize()
	if err := in.validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.HashPassword(in.Contrasena)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Email:        in.Email,
		PasswordHash: hash,
		Rol:          in.Rol,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration with existing email", slog.String("email", in.Email))
			return domain.User{}, invalid("email", "El email ya está registrado: "+in.Email)
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered", slog.String("user_id", u.ID), slog.String("rol", string(u.Rol)))

	s.sendWelcome(ctx, u)

	return u, nil
}

func (s *UserService) sendWelcome(ctx context.Context, u domain.User) {
	if s.Notifier == nil {
		return
	}
	log := slogx.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("error sending welcome email", slog.String("user_id", u.ID), slog.Any("panic", r))
		}
	}()

	body, err := render("welcome", u)
	if err == nil {
		err = s.Notifier.Send(ctx, notify.NewMessage(u.Email, subjectWelcome, body))
	}
	if err != nil {
		log.Error("error sending welcome email",
			slog.String("user_id", u.ID),
			slog.Any("error", fmt.Errorf("%w: %w", ErrNotificationFailed, err)),
		)
	}
}

// Login checks credentials. A wrong password or unknown email is reported
// as ok=false, not as an error.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, bool, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed", slog.String("reason", "unknown_email"))
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}

	if err := s.Hasher.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			log.Info("login failed", slog.String("reason", "wrong_password"), slog.String("user_id", u.ID))
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("verify password for %s: %w", u.ID, err)
	}

	return u, true, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, &NotFoundError{Entity: EntityUser, ID: id}
	}
	return u, err
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) ListSpecialists(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListSpecialists(ctx)
}
