package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "no flags keeps defaults",
			args: []string{"cmd"},
			want: Config{
				APIBaseURL:          "http://localhost:8000",
				RequestTimeout:      30 * time.Second,
				PollInterval:        5 * time.Second,
				UploadCooldown:      time.Second,
				OnlineCheckInterval: 3 * time.Second,
				CacheDSN:            "evidencekeeper.db",
			},
		},
		{
			name: "overrides base url and timeouts",
			args: []string{"cmd", "-a", "https://compliance.example.com", "-t", "10", "-p", "2"},
			want: Config{
				APIBaseURL:          "https://compliance.example.com",
				RequestTimeout:      10 * time.Second,
				PollInterval:        2 * time.Second,
				UploadCooldown:      time.Second,
				OnlineCheckInterval: 3 * time.Second,
				CacheDSN:            "evidencekeeper.db",
			},
		},
		{
			name: "disables the cache",
			args: []string{"cmd", "-d", ""},
			want: Config{
				APIBaseURL:          "http://localhost:8000",
				RequestTimeout:      30 * time.Second,
				PollInterval:        5 * time.Second,
				UploadCooldown:      time.Second,
				OnlineCheckInterval: 3 * time.Second,
				CacheDSN:            "",
			},
		},
		{
			name: "ignores foreign flags",
			args: []string{"cmd", "-c", "config.json", "-i", "7"},
			want: Config{
				APIBaseURL:          "http://localhost:8000",
				RequestTimeout:      30 * time.Second,
				PollInterval:        5 * time.Second,
				UploadCooldown:      time.Second,
				OnlineCheckInterval: 7 * time.Second,
				CacheDSN:            "evidencekeeper.db",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			cfg := &Config{}
			cfg.LoadDefaults()
			parseFlags(cfg)

			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestParseFlags_BadValuePanics(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-t", "ten"}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseFlags(cfg) })
}
