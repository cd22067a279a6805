package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gobarber/internal/flagx"
)

var knownFlags = []string{
	"-a", "-d", "-ephemeral", "-t", "-toast-ttl", "-log-file", "-log-level", "-log-format",
}

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in knownFlags are looked at, so -c/-config and anything else on the
// command line is left alone. Panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags, "-ephemeral")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base URL of the API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the session database")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep the session in memory only")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.DurationVar(&cfg.ToastTTL, "toast-ttl", cfg.ToastTTL, "notification lifetime")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file, empty for stderr")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t applies only when given, so a sub-second timeout from JSON survives
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
