package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := writeConfigFile(t, `{
		"api_base_url": "https://compliance.example.com",
		"request_timeout": "10s",
		"poll_interval": "2s",
		"cache_dsn": "cache.db"
	}`)
	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "https://compliance.example.com", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, "cache.db", cfg.CacheDSN)
	// untouched fields keep their defaults
	assert.Equal(t, time.Second, cfg.UploadCooldown)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestParseJSON_NoFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
}

func TestParseJSON_BrokenFilePanics(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := writeConfigFile(t, `{not json`)
	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJSON(cfg) })
}
