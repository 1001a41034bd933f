// Package config defines the gilead configuration and its loader.
package config

import (
	"errors"
	"fmt"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendNATS   = "nats"
	BackendMemory = "memory"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Backend selects the scheduling state store: sqlite, nats or memory.
	Backend string `koanf:"backend"`

	// DBPath is the SQLite file. Empty resolves to the XDG data directory.
	DBPath string `koanf:"db_path"`

	// NATSURL and NATSBucket configure the JetStream KV backend.
	NATSURL    string `koanf:"nats_url"`
	NATSBucket string `koanf:"nats_bucket"`

	// CatalogPath is the YAML or JSON card catalog.
	CatalogPath string `koanf:"catalog_path"`

	// Addr is the HTTP listen address for `gilead serve`.
	Addr string `koanf:"addr"`

	// SessionLimit caps the deck size of an unfiltered review session.
	SessionLimit int `koanf:"session_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Backend:      BackendSQLite,
		NATSURL:      "nats://127.0.0.1:4222",
		NATSBucket:   "gilead_review",
		CatalogPath:  "cards.yaml",
		Addr:         ":8080",
		SessionLimit: 20,
	}
}

// Validate checks field values and returns an error wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
	case BackendNATS:
		if c.NATSURL == "" {
			return fmt.Errorf("%w: nats_url must not be empty for the nats backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.SessionLimit <= 0 {
		return fmt.Errorf("%w: session_limit must be positive, got %d", ErrInvalidConfig, c.SessionLimit)
	}
	return nil
}
