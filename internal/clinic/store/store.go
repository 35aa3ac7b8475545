package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx exposes the same surface.
type Store interface {
	Users() Users
	Appointments() Appointments
	Reminders() Reminders

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetSpecialistByID only matches users with the especialista role.
	GetSpecialistByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects the normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	ListSpecialists(ctx context.Context) ([]domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error
}

// Appointments are listed in id order, which is creation order.
type Appointments interface {
	CreateAppointment(ctx context.Context, a domain.Appointment) error
	GetAppointmentByID(ctx context.Context, id string) (domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	ListAppointmentsBySpecialist(ctx context.Context, specialistID string) ([]domain.Appointment, error)
}

type Reminders interface {
	CreateReminder(ctx context.Context, r domain.Reminder) error

	// ListDueReminders returns unsent reminders with due_at <= now, oldest first.
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error)

	// MarkReminderSent claims an unsent reminder. It returns ErrNotFound when
	// the reminder is missing or was already sent.
	MarkReminderSent(ctx context.Context, id string, at time.Time) error

	// DeleteSentReminders removes reminders sent before the cutoff.
	DeleteSentReminders(ctx context.Context, before time.Time) (int64, error)
}
