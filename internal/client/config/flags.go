package config

import (
	"flag"
	"os"
	"time"

	"github.com/haktiv/evidencekeeper/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags:
//
//	-a string   backend base URL
//	-t int      request timeout in seconds
//	-p int      verdict poll interval in seconds
//	-i int      online check interval in seconds
//	-d string   cache database path ("" disables the cache)
//
// Args are pre-filtered with flagx.FilterArgs so flags owned by other
// components (like -c/-config) do not trip this parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-p", "-i", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	poll := fs.Int("p", int(cfg.PollInterval.Seconds()), "verdict poll interval (in seconds)")
	online := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "cache database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.PollInterval = time.Duration(*poll) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*online) * time.Second
}
