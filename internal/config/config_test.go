package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"DB_PASSWORD", "DB_CONNECTION", "DB_MIGRATE", "CORS_ORIGIN", "PASSWORD_HASHER",
		"PICTURE_TIMEOUT", "LOG_LEVEL", "SENTRY_DSN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 27017, cfg.DBPort)
	assert.Equal(t, "userDb", cfg.DBName)
	assert.Empty(t, cfg.DBConnection)
	assert.True(t, cfg.DBMigrate)
	assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
	assert.Equal(t, "sha256", cfg.PasswordHasher)
	assert.Equal(t, 5*time.Second, cfg.PictureTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION", "")
	t.Setenv("DB_PORT", "27018")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("PASSWORD_HASHER", "bcrypt")
	t.Setenv("PICTURE_TIMEOUT", "250ms")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Contains(t, cfg.DBConnection, "./data/users.db")
	assert.Equal(t, 27018, cfg.DBPort)
	assert.False(t, cfg.DBMigrate)
	assert.Equal(t, "bcrypt", cfg.PasswordHasher)
	assert.Equal(t, 250*time.Millisecond, cfg.PictureTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("DB_MIGRATE", "maybe")
	t.Setenv("PICTURE_TIMEOUT", "-1s")

	cfg := Load()

	assert.Equal(t, 27017, cfg.DBPort)
	assert.True(t, cfg.DBMigrate)
	assert.Equal(t, 5*time.Second, cfg.PictureTimeout)
}

func TestSanitized_DropsCredentials(t *testing.T) {
	cfg := &Config{
		AppEnv:       "production",
		Port:         "8080",
		DBDriver:     DriverMongo,
		DBHost:       "db.internal",
		DBPort:       27017,
		DBName:       "userDb",
		DBUser:       "admin",
		DBPassword:   "secret",
		DBConnection: "postgres://admin:secret@db/users",
		CORSOrigin:   "https://app.example.com",
		SentryDSN:    "https://key@sentry.example.com/1",
	}

	safe := cfg.Sanitized()

	assert.Equal(t, "db.internal", safe.DBHost)
	assert.Equal(t, 27017, safe.DBPort)
	assert.Equal(t, "https://app.example.com", safe.CORSOrigin)
	assert.Empty(t, safe.DBUser)
	assert.Empty(t, safe.DBPassword)
	assert.Empty(t, safe.DBConnection)
	assert.Empty(t, safe.SentryDSN)
}
