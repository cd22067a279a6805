package config

import (
	"time"

	"github.com/dmitrijs2005/gobarber/internal/client/toast"
)

// Config holds runtime settings for the GoBarber CLI.
//
// Fields:
//   - APIURL: base URL of the GoBarber HTTP API.
//   - DatabasePath: SQLite file holding the persisted session.
//   - Ephemeral: keep the session in memory only.
//   - RequestTimeout: upper bound for a single API call.
//   - ToastTTL: how long a notification stays on screen.
//   - LogFile, LogLevel, LogFormat: where and how diagnostics are written.
type Config struct {
	APIURL         string
	DatabasePath   string
	Ephemeral      bool
	RequestTimeout time.Duration
	ToastTTL       time.Duration
	LogFile        string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:3333"
	c.DatabasePath = "gobarber.db"
	c.Ephemeral = false
	c.RequestTimeout = 10 * time.Second
	c.ToastTTL = toast.DefaultTTL
	c.LogFile = "gobarber.log"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
