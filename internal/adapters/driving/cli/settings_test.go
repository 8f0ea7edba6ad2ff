package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	out, err := executeCommand(t, "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "Email: (not set")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Database: nuccore")
	assert.Contains(t, out, "Lookup TTL: 7 days")
	assert.Contains(t, out, "Config file:")
}

func TestSettingsCmd_SetEmail(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	out, err := executeCommand(t, "settings", "email", "tester@example.org")
	require.NoError(t, err)
	assert.Contains(t, out, "Email set to tester@example.org")

	cfg, err := configStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "tester@example.org", cfg.Email)
}

func TestSettingsCmd_RejectsBadEmail(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	_, err := executeCommand(t, "settings", "email", "not-an-address")
	assert.Error(t, err)
}

func TestSettingsCmd_SetAPIKey(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	out, err := executeCommand(t, "settings", "api-key", "0123456789abcdef")
	require.NoError(t, err)
	// Keys never echo in full.
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "0123...cdef")

	cfg, err := configStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", cfg.APIKey)
}

func TestSettingsCmd_ClearAPIKey(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	_, err := executeCommand(t, "settings", "api-key", "secret")
	require.NoError(t, err)

	out, err := executeCommand(t, "settings", "api-key", "")
	require.NoError(t, err)
	assert.Contains(t, out, "API key cleared")

	cfg, err := configStore.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
}

func TestSettingsCmd_SetDatabase(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	_, err := executeCommand(t, "settings", "database", "protein")
	require.NoError(t, err)

	cfg, err := configStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "protein", cfg.Database)
}

func TestSettingsCmd_SetCacheTTL(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	t.Run("sets days", func(t *testing.T) {
		_, err := executeCommand(t, "settings", "cache-ttl", "30")
		require.NoError(t, err)

		cfg, err := configStore.Load()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.CacheTTLDays)
	})

	t.Run("zero disables", func(t *testing.T) {
		out, err := executeCommand(t, "settings", "cache-ttl", "0")
		require.NoError(t, err)
		assert.Contains(t, out, "disabled")
	})

	t.Run("rejects negatives", func(t *testing.T) {
		_, err := executeCommand(t, "settings", "cache-ttl", "-1")
		assert.Error(t, err)
	})
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefstuvwxyz"))
}
