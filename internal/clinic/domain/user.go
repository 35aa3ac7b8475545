package domain

import (
	"strings"
	"time"
)

// Role is the access profile of a user.
type Role string

const (
	RolePatient    Role = "usuario"
	RoleSpecialist Role = "especialista"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleSpecialist, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Nombre       string
	Apellido     string
	Email        string
	PasswordHash string // argon2 encoded
	Rol          Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is "nombre apellido" with missing parts left empty.
func (u User) DisplayName() string {
	return u.Nombre + " " + u.Apellido
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
