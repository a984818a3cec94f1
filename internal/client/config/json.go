package config

import (
	"encoding/json"
	"os"

	"github.com/haktiv/evidencekeeper/internal/flagx"
	"github.com/haktiv/evidencekeeper/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the
// file specify intervals either as strings like "30s" or as integer
// nanoseconds.
type jsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	PollInterval        timex.Duration `json:"poll_interval"`
	UploadCooldown      timex.Duration `json:"upload_cooldown"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	CacheDSN            string         `json:"cache_dsn"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// Missing flag means no JSON layer. Read or unmarshal errors panic; the
// config is resolved once at startup and a broken file should be loud.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.UploadCooldown.Duration != 0 {
		cfg.UploadCooldown = jc.UploadCooldown.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
}
