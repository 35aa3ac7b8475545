package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	LogFile             string        // Optional: also write logs to this rotated file
	LogFileMaxSizeMB    int           // Rotate after this many megabytes (default: 100)
	LogFileMaxBackups   int           // Rotated files to keep (default: 5)
	LogFileMaxAgeDays   int           // Days to keep rotated files (default: 28)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	StoreDriver  string // sqlite or postgres (default: sqlite)
	DatabaseFile string // SQLite database file (default: ./clinic.db)
	DatabaseURL  string // Postgres connection string, required for postgres
	PepperFile   string // File holding the password pepper (default: ./pepper)

	CORSAllowedOrigins []string // Browser origins allowed to call the API (default: http://localhost:4200)

	SMTPHost     string // Optional: without it emails are only logged
	SMTPPort     int    // (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // (default: NeuroHealth <no-reply@neurohealth.local>)

	NotifyAsync     bool // Send emails from a worker pool instead of the request (default: true)
	NotifyQueueSize int  // (default: 100)
	NotifyWorkers   int  // (default: 2)

	ReminderInterval time.Duration // How often due reminders are sent (default: 1m)
	ReminderLeadTime time.Duration // How long before an appointment the reminder is due (default: 24h)
	Timezone         string        // Zone appointment dates and times are in (default: UTC)

	RateLimits httpx.RateLimits
}

// LoadConfig reads the environment, after loading a .env file if there is
// one. Variables already set win over the file.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		LogFile:             os.Getenv("LOG_FILE"),
		LogFileMaxSizeMB:    getEnvIntOrDefault("LOG_FILE_MAX_SIZE_MB", 100),
		LogFileMaxBackups:   getEnvIntOrDefault("LOG_FILE_MAX_BACKUPS", 5),
		LogFileMaxAgeDays:   getEnvIntOrDefault("LOG_FILE_MAX_AGE_DAYS", 28),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		StoreDriver:  strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreDriverSQLite)),
		DatabaseFile: getEnvOrDefault("CLINIC_DATABASE_FILE", "clinic.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		PepperFile:   getEnvOrDefault("CLINIC_PEPPER_FILE", "pepper"),

		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "NeuroHealth <no-reply@neurohealth.local>"),

		NotifyAsync:     getEnvBoolOrDefault("NOTIFY_ASYNC", true),
		NotifyQueueSize: getEnvIntOrDefault("NOTIFY_QUEUE_SIZE", 100),
		NotifyWorkers:   getEnvIntOrDefault("NOTIFY_WORKERS", 2),

		ReminderInterval: getEnvDurationOrDefault("REMINDER_INTERVAL", time.Minute),
		ReminderLeadTime: getEnvDurationOrDefault("REMINDER_LEAD_TIME", 24*time.Hour),
		Timezone:         getEnvOrDefault("CLINIC_TIMEZONE", "UTC"),

		RateLimits: httpx.RateLimitsFromEnv(),
	}
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("CLINIC_DATABASE_FILE is empty"))
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid CLINIC_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping empty items.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
