package clinic_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/app"
	"github.com/aussiebroadwan/neurohealth/pkg/clinicsdk"
	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
)

/*
 * Common constants and helper functions for clinic service end-to-end tests.
 * Each test gets its own Postgres container and an in-process service
 * configured the way cmd/clinic configures it.
 */

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "clinic"
	postgresPassword = "clinic"
	postgresDB       = "clinic"

	patientPassword = "Paciente123!"
)

// setupPostgresContainer starts Postgres and returns its connection URL.
func setupPostgresContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// Postgres restarts once after initdb, so wait for the second ready line
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, mappedPort.Port(), postgresDB)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return url, cleanup
}

// relaxedRateLimits keeps tests that make many rapid requests under the
// limits.
func relaxedRateLimits() httpx.RateLimits {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	return httpx.RateLimits{Strict: cfg, Moderate: cfg, Lenient: cfg, Public: cfg}
}

// setupClinic starts Postgres and the clinic service against it, and returns
// the service's base URL.
func setupClinic(t *testing.T, limits httpx.RateLimits) (string, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}

	dbURL, stopDB := setupPostgresContainer(t)

	application, err := app.New(app.Config{
		Env:                 "test",
		LogLevel:            "warn",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 5 * time.Second,
		StoreDriver:         app.StoreDriverPostgres,
		DatabaseURL:         dbURL,
		PepperFile:          filepath.Join(t.TempDir(), "pepper"),
		CORSAllowedOrigins:  []string{"http://localhost:4200"},
		NotifyAsync:         true,
		NotifyQueueSize:     10,
		NotifyWorkers:       1,
		ReminderInterval:    time.Second,
		ReminderLeadTime:    24 * time.Hour,
		Timezone:            "UTC",
		RateLimits:          limits,
	})
	if err != nil {
		stopDB()
		require.NoError(t, err)
	}
	application.StartWorkers()

	srv := httptest.NewServer(application.Handler())

	cleanup := func() {
		srv.Close()
		if err := application.Shutdown(); err != nil {
			t.Logf("failed to shut down clinic: %v", err)
		}
		stopDB()
	}

	return srv.URL, cleanup
}

// registerPair creates a patient and a specialist.
func registerPair(t *testing.T, client *clinicsdk.Client) (*clinicsdk.User, *clinicsdk.User) {
	t.Helper()

	patient, err := client.Register(t.Context(), clinicsdk.RegisterRequest{
		Nombre:     "Ana",
		Apellido:   "Ruiz",
		Email:      "ana@example.com",
		Contrasena: patientPassword,
	})
	require.NoError(t, err)

	specialist, err := client.Register(t.Context(), clinicsdk.RegisterRequest{
		Nombre:     "Luis",
		Apellido:   "Mora",
		Email:      "luis@example.com",
		Contrasena: "Especialista123!",
		Rol:        "especialista",
	})
	require.NoError(t, err)

	return patient, specialist
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *clinicsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Uptime)
	require.NotEmpty(t, health.Version)
}

// assertBadRequest checks for a 400 carrying the given message.
func assertBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	var apiErr *clinicsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, message, apiErr.Message)
}
