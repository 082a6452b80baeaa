// Package config loads CyGo connection settings.
//
// Settings are resolved in precedence order: explicit values set by the
// caller (CLI flags or library options) win over CYGO_* environment
// variables, which win over the optional config file
// (~/.config/cygo/config.toml), which wins over built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cygraph/cygo/pkg/errors"
)

// Built-in defaults matching a stock local Cytoscape installation.
const (
	DefaultBaseURL = "http://localhost"
	DefaultPort    = 1234
	DefaultTimeout = 10 * time.Second
)

// Config holds the connection settings for a CyREST endpoint.
type Config struct {
	// BaseURL is the scheme and host of the CyREST server, without port.
	BaseURL string `toml:"base_url"`

	// Port is the CyREST listen port.
	Port int `toml:"port"`

	// APIVersion pins the REST API version (e.g. "v1"). Empty means
	// auto-negotiate from the version probe.
	APIVersion string `toml:"api_version"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// RetryCount is the number of additional attempts permitted for
	// read-only operations after a transport-level failure.
	RetryCount int `toml:"retry_count"`
}

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Port:           DefaultPort,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
		RetryCount:     0,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load resolves the effective configuration: defaults, then the config
// file at path (or the default location when path is empty), then
// environment overrides. A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = defaultPath()
	}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %s", path)
			}
		} else if !os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config file %s", path)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// defaultPath returns the XDG-style config file location, or empty when the
// home directory cannot be determined.
func defaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "cygo", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cygo", "config.toml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CYGO_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CYGO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("CYGO_API_VERSION"); v != "" {
		cfg.APIVersion = v
	}
	if v := os.Getenv("CYGO_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("CYGO_RETRY_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetryCount = n
		}
	}
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "base_url cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New(errors.ErrCodeInvalidInput, "port %d out of range", c.Port)
	}
	if c.RetryCount < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "retry_count cannot be negative")
	}
	return nil
}
