package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Local Only Defaults", func(t *testing.T) {
		t.Setenv("CLOUD_SYNC_ENABLED", "false")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddress())
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.SyncInterval)
		assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
		assert.False(t, cfg.AllowNonPositiveDeposits)
	})

	t.Run("Cloud Sync Requires Tables", func(t *testing.T) {
		t.Setenv("CLOUD_SYNC_ENABLED", "true")
		t.Setenv("DYNAMODB_ORDERS_TABLE_NAME", "orders")
		t.Setenv("DYNAMODB_USERS_TABLE_NAME", "")
		t.Setenv("DYNAMODB_SETTINGS_TABLE_NAME", "settings")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("CLOUD_SYNC_ENABLED", "true")
		t.Setenv("DYNAMODB_ORDERS_TABLE_NAME", "orders")
		t.Setenv("DYNAMODB_USERS_TABLE_NAME", "users")
		t.Setenv("DYNAMODB_SETTINGS_TABLE_NAME", "settings")
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("SYNC_INTERVAL", "30s")
		t.Setenv("ALLOW_NON_POSITIVE_DEPOSITS", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.HTTPAddress())
		assert.Equal(t, 30*time.Second, cfg.SyncInterval)
		assert.True(t, cfg.AllowNonPositiveDeposits)
		assert.Equal(t, "users", cfg.UsersTableName)
	})

	t.Run("Bad Duration", func(t *testing.T) {
		t.Setenv("CLOUD_SYNC_ENABLED", "false")
		t.Setenv("REMOTE_TIMEOUT", "soon")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STOREFRONT_TEST_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STOREFRONT_TEST_KEY") })

	assert.True(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("STOREFRONT_TEST_KEY"))
	assert.False(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
