package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/domain"
)

func TestRoleValid(t *testing.T) {
	require.True(t, domain.RolePatient.Valid())
	require.True(t, domain.RoleSpecialist.Valid())
	require.True(t, domain.RoleAdmin.Valid())
	require.False(t, domain.Role("medico").Valid())
	require.False(t, domain.Role("").Valid())
}

func TestDisplayNameKeepsMissingParts(t *testing.T) {
	require.Equal(t, "Ana Ruiz", domain.User{Nombre: "Ana", Apellido: "Ruiz"}.DisplayName())
	require.Equal(t, "Ana ", domain.User{Nombre: "Ana"}.DisplayName())
	require.Equal(t, " ", domain.User{}.DisplayName())
}

func TestAppointmentStartsAt(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)

	a := domain.Appointment{Fecha: "2024-05-01", Hora: "10:00"}
	got, err := a.StartsAt(loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), got.UTC())

	_, err = domain.Appointment{Fecha: "01/05/2024", Hora: "10:00"}.StartsAt(time.UTC)
	require.Error(t, err)
}
