package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
	DriverMemory = "memory"
)

type Config struct {
	// Application
	AppEnv string
	Port   string

	// Database (DB_DRIVER selects the backend, default: mongo)
	DBDriver     string
	DBHost       string
	DBPort       int
	DBName       string
	DBUser       string
	DBPassword   string
	DBConnection string // SQL backends only
	DBMigrate    bool   // Apply migrations / ensure indexes on start

	// HTTP
	CORSOrigin string

	// Accounts
	PasswordHasher string        // "sha256" or "bcrypt"
	PictureTimeout time.Duration // Bound on the external picture lookup

	// Observability (optional)
	LogLevel  string
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	driver := envString("DB_DRIVER", DriverMongo)

	cfg := &Config{
		// Application
		AppEnv: envString("APP_ENV", "development"),
		Port:   envString("PORT", "8080"),

		// Database
		DBDriver:     driver,
		DBHost:       envString("DB_HOST", "localhost"),
		DBPort:       envInt("DB_PORT", 27017),
		DBName:       envString("DB_NAME", "userDb"),
		DBUser:       envString("DB_USER", ""),
		DBPassword:   envString("DB_PASSWORD", ""),
		DBConnection: envString("DB_CONNECTION", defaultConnection(driver)),
		DBMigrate:    envBool("DB_MIGRATE", true),

		// HTTP
		CORSOrigin: envString("CORS_ORIGIN", "http://localhost:3000"),

		// Accounts
		PasswordHasher: envString("PASSWORD_HASHER", "sha256"),
		PictureTimeout: envDuration("PICTURE_TIMEOUT", 5*time.Second),

		// Observability
		LogLevel:  envString("LOG_LEVEL", ""),
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	return cfg
}

func defaultConnection(driver string) string {
	if driver == DriverSQLite {
		return "./data/users.db?_pragma=journal_mode(WAL)"
	}
	return ""
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Credentials and connection strings are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppEnv:     c.AppEnv,
		Port:       c.Port,
		DBDriver:   c.DBDriver,
		DBHost:     c.DBHost,
		DBPort:     c.DBPort,
		DBName:     c.DBName,
		CORSOrigin: c.CORSOrigin,
	}
}
