package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/service"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
)

// flakyNameStore fails GetUserByID for one id while role-qualified lookups
// keep working.
type flakyNameStore struct {
	store.Store
	failID string
}

func (f *flakyNameStore) Users() store.Users {
	return &flakyNameUsers{Users: f.Store.Users(), failID: f.failID}
}

type flakyNameUsers struct {
	store.Users
	failID string
}

func (f *flakyNameUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if id == f.failID {
		return domain.User{}, errors.New("db hiccup")
	}
	return f.Users.GetUserByID(ctx, id)
}

func newAppointmentService(t *testing.T) (*service.AppointmentService, *countingStore, *fakeNotifier, *fakeScheduler) {
	t.Helper()
	st := newStore(t)
	seedClinic(t, st)
	n := &fakeNotifier{}
	sch := &fakeScheduler{}
	return &service.AppointmentService{Store: st, Notifier: n, Reminders: sch}, st, n, sch
}

func TestCreateAppointment(t *testing.T) {
	svc, st, n, sch := newAppointmentService(t)

	appt, err := svc.CreateAppointment(t.Context(), "u1", "s1", "2024-05-01", "10:00")
	require.NoError(t, err)
	require.NotEmpty(t, appt.ID)
	require.Equal(t, "u1", appt.UsuarioID)
	require.Equal(t, "s1", appt.EspecialistaID)
	require.Equal(t, "2024-05-01", appt.Fecha)
	require.Equal(t, "10:00", appt.Hora)

	require.Equal(t, 1, st.appointmentSaves())
	stored, err := st.Appointments().GetAppointmentByID(t.Context(), appt.ID)
	require.NoError(t, err)
	require.Equal(t, "10:00", stored.Hora)

	scheduled := sch.calls()
	require.Len(t, scheduled, 1)
	require.Equal(t, appt.ID, scheduled[0].ID)

	sent := n.calls()
	require.Len(t, sent, 1)
	require.Equal(t, "ana@example.com", sent[0].To)
	require.Equal(t, "NeuroHealth - Confirmación de cita", sent[0].Subject)
	require.Contains(t, sent[0].HTMLBody, "Hola Ana,")
	require.Contains(t, sent[0].HTMLBody, "Luis Mora")
	require.Contains(t, sent[0].HTMLBody, "2024-05-01")
	require.Contains(t, sent[0].HTMLBody, "10:00")
}

func TestCreateAppointmentMissingReferences(t *testing.T) {
	tests := []struct {
		name         string
		userID       string
		specialistID string
		entity       string
		missingID    string
	}{
		{"unknown specialist", "u1", "missing", service.EntitySpecialist, "missing"},
		{"unknown user", "ghost", "s1", service.EntityUser, "ghost"},
		{"patient is not a specialist", "u1", "u1", service.EntitySpecialist, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, n, sch := newAppointmentService(t)

			_, err := svc.CreateAppointment(t.Context(), tt.userID, tt.specialistID, "2024-05-01", "10:00")
			require.ErrorIs(t, err, service.ErrNotFound)

			var nf *service.NotFoundError
			require.True(t, errors.As(err, &nf))
			require.Equal(t, tt.entity, nf.Entity)
			require.Contains(t, err.Error(), tt.missingID)

			require.Zero(t, st.appointmentSaves())
			require.Empty(t, sch.calls())
			require.Empty(t, n.calls())
		})
	}
}

func TestCreateAppointmentSpecialistMessage(t *testing.T) {
	svc, _, _, _ := newAppointmentService(t)

	_, err := svc.CreateAppointment(t.Context(), "u1", "missing", "2024-05-01", "10:00")
	require.EqualError(t, err, "Especialista no encontrado con ID: missing")
}

func TestCreateAppointmentRejectsMalformedSchedule(t *testing.T) {
	svc, st, _, _ := newAppointmentService(t)

	for _, tc := range [][2]string{
		{"01/05/2024", "10:00"},
		{"2024-13-01", "10:00"},
		{"2024-05-01", "25:00"},
		{"2024-05-01", "10am"},
		{"2024-5-1", "10:00"},
		{"2024-05-01", "10:00:00:00"},
	} {
		_, err := svc.CreateAppointment(t.Context(), "u1", "s1", tc[0], tc[1])
		require.ErrorIs(t, err, service.ErrValidation, "fecha=%s hora=%s", tc[0], tc[1])
	}
	require.Zero(t, st.appointmentSaves())
}

func TestCreateAppointmentSurvivesNotifierFailure(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		svc, st, n, _ := newAppointmentService(t)
		n.err = errors.New("smtp unavailable")

		appt, err := svc.CreateAppointment(t.Context(), "u1", "s1", "2024-05-01", "10:00")
		require.NoError(t, err)
		require.NotEmpty(t, appt.ID)
		require.Len(t, n.calls(), 1, "exactly one attempt")

		_, err = st.Appointments().GetAppointmentByID(t.Context(), appt.ID)
		require.NoError(t, err)
	})

	t.Run("panic", func(t *testing.T) {
		svc, _, n, _ := newAppointmentService(t)
		n.panic = true

		appt, err := svc.CreateAppointment(t.Context(), "u1", "s1", "2024-05-01", "10:00")
		require.NoError(t, err)
		require.NotEmpty(t, appt.ID)
		require.Len(t, n.calls(), 1)
	})
}

func TestCreateAppointmentSurvivesSpecialistNameFailure(t *testing.T) {
	_, st, n, sch := newAppointmentService(t)
	svc := &service.AppointmentService{
		Store:     &flakyNameStore{Store: st, failID: "s1"},
		Notifier:  n,
		Reminders: sch,
	}

	appt, err := svc.CreateAppointment(t.Context(), "u1", "s1", "2024-05-01", "10:00")
	require.NoError(t, err)
	require.NotEmpty(t, appt.ID)
	require.Equal(t, "s1", appt.EspecialistaID)

	require.Equal(t, 1, st.appointmentSaves())
	_, err = st.Appointments().GetAppointmentByID(t.Context(), appt.ID)
	require.NoError(t, err)
	require.Len(t, sch.calls(), 1)
	require.Empty(t, n.calls(), "no confirmation without the specialist name")
}

func TestCreateAppointmentCanonicalSchedule(t *testing.T) {
	tests := []struct {
		fecha, hora string
		wantHora    string
	}{
		{"2024-05-01", "09:00", "09:00"},
		{"2024-05-01", "9:00", "09:00"},
		{"2024-05-01", "10:00:00", "10:00"},
		{" 2024-05-01 ", " 10:30 ", "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.hora, func(t *testing.T) {
			svc, st, _, _ := newAppointmentService(t)

			appt, err := svc.CreateAppointment(t.Context(), "u1", "s1", tt.fecha, tt.hora)
			require.NoError(t, err)
			require.Equal(t, "2024-05-01", appt.Fecha)
			require.Equal(t, tt.wantHora, appt.Hora)

			stored, err := st.Appointments().GetAppointmentByID(t.Context(), appt.ID)
			require.NoError(t, err)
			require.Equal(t, tt.wantHora, stored.Hora)
			require.Equal(t, appt.CreatedAt.Unix(), stored.CreatedAt.Unix())
		})
	}
}

func TestCreateAppointmentPropagatesSchedulerFailure(t *testing.T) {
	svc, st, n, sch := newAppointmentService(t)
	sch.err = errors.New("scheduler down")

	_, err := svc.CreateAppointment(t.Context(), "u1", "s1", "2024-05-01", "10:00")
	require.ErrorIs(t, err, sch.err)

	// the appointment was already written and stays
	require.Equal(t, 1, st.appointmentSaves())
	all, err := st.Appointments().ListAppointments(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Empty(t, n.calls())
}

func TestListAppointmentsEnrichment(t *testing.T) {
	svc, st, _, _ := newAppointmentService(t)
	ctx := t.Context()

	first, err := svc.CreateAppointment(ctx, "u1", "s1", "2024-05-01", "10:00")
	require.NoError(t, err)
	second, err := svc.CreateAppointment(ctx, "u1", "s1", "2024-05-02", "11:00")
	require.NoError(t, err)

	// legacy row without specialist
	require.NoError(t, st.Store.Appointments().CreateAppointment(ctx, domain.Appointment{
		ID: "zz-legacy", UsuarioID: "u1", Fecha: "2024-05-03", Hora: "09:00",
	}))

	details, err := svc.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, details, 3)
	require.Equal(t, first.ID, details[0].ID)
	require.Equal(t, second.ID, details[1].ID)

	for _, d := range details {
		require.Equal(t, "Ana Ruiz", d.PatientName)
		require.Equal(t, domain.StatusActive, d.Estado)
	}
	require.Equal(t, "Luis Mora", details[0].SpecialistName)
	require.False(t, details[2].HasSpecialist())
	require.Equal(t, " ", details[2].SpecialistName)
}

func TestEnrichToleratesMissingUsers(t *testing.T) {
	svc, _, _, _ := newAppointmentService(t)

	details, err := service.Enrich(svc, t.Context(), []domain.Appointment{
		{ID: "c1", UsuarioID: "gone", EspecialistaID: "also-gone", Fecha: "2024-05-01", Hora: "10:00"},
		{ID: "c2", UsuarioID: "u1", EspecialistaID: "also-gone", Fecha: "2024-05-01", Hora: "11:00"},
	})
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, " ", details[0].PatientName)
	require.Equal(t, " ", details[0].SpecialistName)
	require.Equal(t, "Ana Ruiz", details[1].PatientName)
	require.Equal(t, domain.StatusActive, details[1].Estado)
}

func TestListAppointmentsByUserAndSpecialist(t *testing.T) {
	svc, st, _, _ := newAppointmentService(t)
	ctx := t.Context()
	seedUser(t, st, "s2", "Marta", "Gil", "marta@example.com", domain.RoleSpecialist)

	_, err := svc.CreateAppointment(ctx, "u1", "s1", "2024-05-01", "10:00")
	require.NoError(t, err)
	_, err = svc.CreateAppointment(ctx, "u1", "s2", "2024-05-02", "10:00")
	require.NoError(t, err)

	byUser, err := svc.ListAppointmentsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	bySpecialist, err := svc.ListAppointmentsBySpecialist(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, bySpecialist, 1)
	require.Equal(t, "Marta Gil", bySpecialist[0].SpecialistName)
	require.Equal(t, "Ana Ruiz", bySpecialist[0].PatientName)
	require.Equal(t, domain.StatusActive, bySpecialist[0].Estado)

	none, err := svc.ListAppointmentsByUser(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGetAppointment(t *testing.T) {
	svc, _, _, _ := newAppointmentService(t)

	appt, err := svc.CreateAppointment(t.Context(), "u1", "s1", "2024-05-01", "10:00")
	require.NoError(t, err)

	got, err := svc.GetAppointment(t.Context(), appt.ID)
	require.NoError(t, err)
	require.Equal(t, appt.ID, got.ID)

	_, err = svc.GetAppointment(t.Context(), "nope")
	require.ErrorIs(t, err, service.ErrNotFound)
}
