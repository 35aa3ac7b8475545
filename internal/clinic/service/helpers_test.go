package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/notify"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store/drivers/sqlite"
	"github.com/aussiebroadwan/neurohealth/pkg/cryptox"
)

// countingStore counts appointment writes on top of a real store.
type countingStore struct {
	store.Store
	mu    sync.Mutex
	saves int
}

func (c *countingStore) Appointments() store.Appointments {
	return &countingAppointments{Appointments: c.Store.Appointments(), parent: c}
}

func (c *countingStore) appointmentSaves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

type countingAppointments struct {
	store.Appointments
	parent *countingStore
}

func (c *countingAppointments) CreateAppointment(ctx context.Context, a domain.Appointment) error {
	c.parent.mu.Lock()
	c.parent.saves++
	c.parent.mu.Unlock()
	return c.Appointments.CreateAppointment(ctx, a)
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []notify.Message
	err   error
	panic bool
}

func (f *fakeNotifier) Send(ctx context.Context, msg notify.Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	if f.panic {
		panic("mail transport exploded")
	}
	return f.err
}

func (f *fakeNotifier) calls() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Message(nil), f.sent...)
}

type fakeScheduler struct {
	mu    sync.Mutex
	appts []domain.Appointment
	err   error
}

func (f *fakeScheduler) Schedule(ctx context.Context, appt domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appts = append(f.appts, appt)
	return f.err
}

func (f *fakeScheduler) calls() []domain.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Appointment(nil), f.appts...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *countingStore {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return &countingStore{Store: s}
}

var testHasher = cryptox.NewHasher("test-pepper")

func seedUser(t *testing.T, s store.Store, id, nombre, apellido, email string, rol domain.Role) domain.User {
	t.Helper()
	hash, err := testHasher.HashPassword("secreto")
	require.NoError(t, err)
	u := domain.User{ID: id, Nombre: nombre, Apellido: apellido, Email: email, PasswordHash: hash, Rol: rol}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

// seedClinic creates patient u1 and specialist s1.
func seedClinic(t *testing.T, s store.Store) {
	t.Helper()
	seedUser(t, s, "u1", "Ana", "Ruiz", "ana@example.com", domain.RolePatient)
	seedUser(t, s, "s1", "Luis", "Mora", "luis@example.com", domain.RoleSpecialist)
}
