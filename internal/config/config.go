// Package config defines site configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DatabasePath is the SQLite file holding feedback entries. It is
	// created on first start.
	DatabasePath string `koanf:"database_path"`

	// RequireFields rejects feedback and guestbook submissions with an empty
	// name or comment. Off by default: empty submissions are stored.
	RequireFields bool `koanf:"require_fields"`

	// PersistGuestbook stores guestbook name and comment as a feedback entry.
	// Off by default: guestbook submissions are only echoed.
	PersistGuestbook bool `koanf:"persist_guestbook"`

	// BusyTimeoutMS is how long a SQLite connection waits on a locked
	// database before failing the write.
	BusyTimeoutMS int `koanf:"busy_timeout_ms"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":5000",
		DatabasePath:      "database.db",
		RequireFields:     false,
		PersistGuestbook:  false,
		BusyTimeoutMS:     5_000,
		ShutdownTimeoutMS: 30_000,
	}
}
