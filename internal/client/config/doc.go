// Package config loads runtime configuration for the GoBarber CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string            base URL of the API
//	-d string            path of the SQLite session database
//	-ephemeral           keep the session in memory only
//	-t int               request timeout (seconds)
//	-toast-ttl duration  notification lifetime, e.g. 3s
//	-log-file string     log file, empty for stderr
//	-log-level string    debug, info, warn or error
//	-log-format string   text or json
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. Absent keys keep their default:
//
//	{
//	  "api_url": "http://localhost:3333",
//	  "database_path": "gobarber.db",
//	  "request_timeout": "10s",
//	  "toast_ttl": "3s",
//	  "log_file": "gobarber.log",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
