package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justbuildpd-sudo/newsbot-sub000/config"
	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.Default().BaseURL, cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.Sweep())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
base_url: http://localhost:8090
request_timeout: 3s
sweep_interval: 1m
log_level: debug
ttl:
  news: 2m
  billScores: 20m
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8090", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, time.Minute, cfg.Sweep())
	assert.Equal(t, "debug", cfg.LogLevel)

	ttls := cfg.TTLs()
	assert.Equal(t, 2*time.Minute, ttls[dashboard.KeyNews])
	assert.Equal(t, 20*time.Minute, ttls[dashboard.KeyBillScores])
	// keys without overrides keep their defaults
	assert.Equal(t, 30*time.Minute, ttls[dashboard.KeyPoliticians])
}

func TestEnvOverridesBaseURL(t *testing.T) {
	path := writeConfig(t, "base_url: http://from-file.example.com\n")
	t.Setenv(config.EnvBaseURL, "http://from-env.example.com")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env.example.com", cfg.BaseURL)
}

func TestUnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "base_urll: oops\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestUnknownTTLKeyRejected(t *testing.T) {
	path := writeConfig(t, "ttl:\n  weather: 5m\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather")
}

func TestNonPositiveTTLRejected(t *testing.T) {
	path := writeConfig(t, "ttl:\n  news: -5m\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestMalformedDurationRejected(t *testing.T) {
	path := writeConfig(t, "request_timeout: soon\n")

	_, err := config.Load(path)
	require.Error(t, err)
}
