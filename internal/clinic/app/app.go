package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/neurohealth/internal/clinic/http"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/notify"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/service"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store/drivers/postgres"
	"github.com/aussiebroadwan/neurohealth/internal/clinic/store/drivers/sqlite"
	"github.com/aussiebroadwan/neurohealth/pkg/cryptox"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the clinic service together and owns its lifecycle.
type Application struct {
	cfg      Config
	logger   *slog.Logger
	location *time.Location

	// Core dependencies
	db       store.Store
	notifier notify.Notifier
	queue    *notify.Queue // nil when notifications are sent inline

	// Services
	userService        *service.UserService
	appointmentService *service.AppointmentService
	reminderService    *service.ReminderService
	remindersRunning   bool

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	app := &Application{
		cfg:      cfg,
		location: loc,
		logger: slogx.New(slogx.Config{
			Service:    "clinic-service",
			Version:    BuildVersion,
			Env:        cfg.Env,
			Level:      cfg.LogLevel,
			Format:     cfg.LogFormat,
			File:       cfg.LogFile,
			MaxSizeMB:  cfg.LogFileMaxSizeMB,
			MaxBackups: cfg.LogFileMaxBackups,
			MaxAgeDays: cfg.LogFileMaxAgeDays,
		}),
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the HTTP handler with every route applied.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.StartWorkers()

	app.logger.Info("clinic service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// StartWorkers starts the reminder worker. Run calls it; callers serving
// Handler themselves call it directly.
func (app *Application) StartWorkers() {
	if app.remindersRunning {
		return
	}
	app.reminderService.Start()
	app.remindersRunning = true
}

// Shutdown stops accepting requests, then stops the workers, then closes the
// database, so no background send outlives the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clinic service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.remindersRunning {
		app.reminderService.Stop()
		app.remindersRunning = false
	}

	if app.queue != nil {
		if err := app.queue.Close(ctx); err != nil {
			app.logger.Error("notification queue did not drain", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clinic service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case StoreDriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "store", app.cfg.StoreDriver)
	return nil
}

// initServices builds the notifier chain and the workflows
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	var base notify.Notifier = notify.LogNotifier{}
	if app.cfg.SMTPHost != "" {
		smtp, err := notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
			Timeout:  15 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp: %w", err)
		}
		base = smtp
		app.logger.Info("smtp notifier enabled", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
	} else {
		app.logger.Warn("SMTP_HOST not set, emails will only be logged")
	}

	app.notifier = base
	if app.cfg.NotifyAsync {
		app.queue = notify.NewQueue(base, notify.QueueConfig{
			Size:    app.cfg.NotifyQueueSize,
			Workers: app.cfg.NotifyWorkers,
		})
		app.notifier = app.queue
	}

	app.reminderService = service.NewReminderService(
		app.db,
		app.notifier,
		app.logger,
		app.cfg.ReminderInterval,
		app.cfg.ReminderLeadTime,
		app.location,
	)

	app.userService = &service.UserService{
		Store:    app.db,
		Hasher:   cryptox.NewHasher(pepper),
		Notifier: app.notifier,
	}
	app.appointmentService = &service.AppointmentService{
		Store:     app.db,
		Notifier:  app.notifier,
		Reminders: app.reminderService,
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.RateLimits,
		app.cfg.CORSAllowedOrigins,
	)

	router.UserService = app.userService
	router.AppointmentService = app.appointmentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
