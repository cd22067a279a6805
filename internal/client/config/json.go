package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gobarber/internal/flagx"
	"github.com/dmitrijs2005/gobarber/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell an absent key from an explicit zero value.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	DatabasePath   *string         `json:"database_path"`
	Ephemeral      *bool           `json:"ephemeral"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ToastTTL       *timex.Duration `json:"toast_ttl"`
	LogFile        *string         `json:"log_file"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Without either flag it does nothing. Panics on read or decode
// errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setIf(&cfg.APIURL, jc.APIURL)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.Ephemeral, jc.Ephemeral)
	setIf(&cfg.LogFile, jc.LogFile)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ToastTTL != nil {
		cfg.ToastTTL = jc.ToastTTL.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
