// Package config handles the data layer's configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
)

// EnvBaseURL is the environment variable that overrides the backend base
// URL. Deployment picks between the production and local endpoint with it;
// nothing else is env-driven.
const EnvBaseURL = "NEWSBOT_API_URL"

// Config is the on-disk configuration. Durations are strings in
// time.ParseDuration syntax ("10s", "5m", "1h30m").
type Config struct {
	// BaseURL is the backend serving the dashboard endpoints.
	BaseURL string `yaml:"base_url"`

	// RequestTimeout is the per-request deadline applied by the fetcher.
	RequestTimeout string `yaml:"request_timeout"`

	// SweepInterval is how often the eviction sweep runs.
	SweepInterval string `yaml:"sweep_interval"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// TTL holds per-key time-to-live overrides, keyed by dashboard key
	// name ("politicians", "billScores", "news", "trends").
	TTL map[string]string `yaml:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BaseURL:        "https://api.newsbot.example.com",
		RequestTimeout: "10s",
		SweepInterval:  "5m",
		LogLevel:       "info",
	}
}

/*
Load reads the config file at path, layered over the defaults.

A missing file is not an error: the defaults apply, and the base URL can
still come from the environment. Unknown fields in the file ARE an error,
so typos don't silently fall back to defaults.
*/
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fall through to env override
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.BaseURL = url
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if _, err := parseDuration("request_timeout", c.RequestTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("sweep_interval", c.SweepInterval); err != nil {
		return err
	}
	for name, raw := range c.TTL {
		if !dashboard.Key(name).Valid() {
			return fmt.Errorf("config: ttl override for unknown key %q", name)
		}
		d, err := parseDuration("ttl."+name, raw)
		if err != nil {
			return err
		}
		if d <= 0 {
			return fmt.Errorf("config: ttl.%s must be positive, got %q", name, raw)
		}
	}
	return nil
}

// Timeout returns the parsed per-request deadline.
func (c Config) Timeout() time.Duration {
	d, _ := parseDuration("request_timeout", c.RequestTimeout)
	return d
}

// Sweep returns the parsed eviction sweep interval.
func (c Config) Sweep() time.Duration {
	d, _ := parseDuration("sweep_interval", c.SweepInterval)
	return d
}

// TTLs returns the per-key TTL table: defaults with the file's overrides
// applied on top.
func (c Config) TTLs() map[dashboard.Key]time.Duration {
	ttls := dashboard.DefaultTTLs()
	for name, raw := range c.TTL {
		if d, err := time.ParseDuration(raw); err == nil {
			ttls[dashboard.Key(name)] = d
		}
	}
	return ttls
}

func parseDuration(field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", field, err)
	}
	return d, nil
}
