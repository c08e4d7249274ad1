package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("COVID_SERVICE_KEY", "key")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.ApiURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HistoryEnabled())

	api := cfg.ApiMetadata()
	assert.Equal(t, "key", api.ServiceKey)
	assert.Equal(t, "serviceKey", api.ServiceKeyParam)
	assert.Equal(t, 10*time.Second, api.Timeout)
}

func TestLoadConfig_MissingServiceKey(t *testing.T) {
	t.Setenv("COVID_SERVICE_KEY", "")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("COVID_SERVICE_KEY", "key")
	t.Setenv("COVID_API_URL", "http://localhost:9999/new/")
	t.Setenv("COVID_FETCH_TIMEOUT", "3s")
	t.Setenv("ARANGO_ENDPOINT", "https://arango:8529")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/new/", cfg.ApiMetadata().URL)
	assert.Equal(t, 3*time.Second, cfg.ApiMetadata().Timeout)
	assert.True(t, cfg.HistoryEnabled())
	assert.Error(t, cfg.ValidateHistory())

	t.Setenv("ARANGO_USER_NAME", "root")
	t.Setenv("ARANGO_PASS", "secret")
	t.Setenv("ARANGO_DATABASE", "covid")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateHistory())
}
