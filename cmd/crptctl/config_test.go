package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"crpt-gateway/crpt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithToken(t *testing.T) {
	t.Setenv("CRPT_REGISTRY_TOKEN", "secret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, crpt.DefaultEndpoint, cfg.Registry.Endpoint)
	assert.Equal(t, "secret", cfg.Registry.Token)
	assert.Equal(t, 30*time.Second, cfg.Registry.HTTPTimeout)
	assert.Equal(t, time.Second, cfg.Quota.TimeUnit)
	assert.Equal(t, 5, cfg.Quota.RequestLimit)
	assert.Zero(t, cfg.Quota.AcquireTimeout)
	assert.False(t, cfg.Stats.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_RequiresToken(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Token")
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crptctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
registry:
  endpoint: http://localhost:8081/create
  token: from-file
quota:
  time_unit: 2s
  request_limit: 10
  acquire_timeout: 500ms
logging:
  level: debug
`), 0o600))
	t.Setenv("CRPT_QUOTA_REQUEST_LIMIT", "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081/create", cfg.Registry.Endpoint)
	assert.Equal(t, "from-file", cfg.Registry.Token)
	assert.Equal(t, 2*time.Second, cfg.Quota.TimeUnit)
	assert.Equal(t, 3, cfg.Quota.RequestLimit)
	assert.Equal(t, 500*time.Millisecond, cfg.Quota.AcquireTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("CRPT_REGISTRY_TOKEN", "secret")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "zero limit", env: map[string]string{"CRPT_QUOTA_REQUEST_LIMIT": "0"}},
		{name: "zero unit", env: map[string]string{"CRPT_QUOTA_TIME_UNIT": "0s"}},
		{name: "bad endpoint", env: map[string]string{"CRPT_REGISTRY_ENDPOINT": "not a url"}},
		{name: "stats without redis", env: map[string]string{"CRPT_STATS_ENABLED": "true"}},
		{name: "unknown level", env: map[string]string{"CRPT_LOGGING_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CRPT_REGISTRY_TOKEN", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}
