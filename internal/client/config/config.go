// Package config resolves the client's runtime settings in three layers:
// defaults, then an optional JSON file (-c/-config), then command-line
// flags. Later layers win.
package config

import "time"

// Config holds runtime settings for the evidencekeeper CLI.
type Config struct {
	// APIBaseURL is the backend origin, e.g. "http://localhost:8000".
	APIBaseURL string

	// RequestTimeout bounds every backend call. Zero disables the bound.
	RequestTimeout time.Duration

	// PollInterval is how often the check watcher re-reads verdicts while
	// any evidence is still processing.
	PollInterval time.Duration

	// UploadCooldown is the cosmetic delay before the progress display
	// resets after a finished upload.
	UploadCooldown time.Duration

	// OnlineCheckInterval is how often the REPL probes backend liveness.
	OnlineCheckInterval time.Duration

	// CacheDSN locates the local sqlite cache. Empty disables the cache.
	CacheDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.PollInterval = 5 * time.Second
	c.UploadCooldown = time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.CacheDSN = "evidencekeeper.db"
}

// LoadConfig constructs a Config from defaults, JSON (if present), and
// flags, in that order of precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
