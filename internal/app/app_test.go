package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/userbase/internal/config"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		AppEnv:         "development",
		DBDriver:       driver,
		DBMigrate:      true,
		PasswordHasher: "sha256",
		PictureTimeout: time.Second,
	}
}

func TestNew_Memory(t *testing.T) {
	a, err := New(context.Background(), testConfig(config.DriverMemory))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Mongo)
	assert.NotNil(t, a.AuthService)
	assert.NotNil(t, a.UserService)
	assert.NotNil(t, a.ProfileService)
	assert.NotNil(t, a.Pictures)
}

func TestNew_SQLite(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.DBConnection = filepath.Join(t.TempDir(), "data", "users.db")

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.DB)

	exists, err := a.UserService.EmailExists(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, a.Close())
	assert.Nil(t, a.DB)
	assert.NoError(t, a.Close(), "second close is a no-op")
}

func TestNew_SQLRequiresConnection(t *testing.T) {
	_, err := New(context.Background(), testConfig(config.DriverPgx))
	assert.ErrorContains(t, err, "DB_CONNECTION is required")
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), testConfig("redis"))
	assert.ErrorContains(t, err, "unsupported database driver: redis")
}

func TestNew_UnknownHasher(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.PasswordHasher = "md5"

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "password hasher")
}
