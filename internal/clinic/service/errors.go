package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrNotificationFailed wraps mail errors in log lines. It never reaches
	// callers of the workflows.
	ErrNotificationFailed = errors.New("notification failed")
)

// Entities named in NotFoundError.
const (
	EntityUser        = "Usuario"
	EntitySpecialist  = "Especialista"
	EntityAppointment = "Cita"
)

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado con ID: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError is bad or duplicate input. Message is shown to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
