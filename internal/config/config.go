// Package config loads the service configuration from config.toml, an
// optional per-environment overlay, and SSMA_* environment variables, in
// that order of precedence from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/database"
	"github.com/JaimeStill/ssma/pkg/middleware"
	"github.com/JaimeStill/ssma/pkg/settings"
	"github.com/JaimeStill/ssma/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	// EnvPrefix is the root of every environment override.
	EnvPrefix  = "SSMA"
	EnvSSMAEnv = "SSMA_ENV"
)

// Config is the root configuration for the SSMA service.
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        database.Config       `toml:"database"`
	Storage         storage.Config        `toml:"storage"`
	API             APIConfig             `toml:"api"`
	Auth            middleware.AuthConfig `toml:"auth"`
	Safety          safety.Config         `toml:"safety"`
	ShutdownTimeout string                `toml:"shutdown_timeout"`
	Version         string                `toml:"version"`
}

// Env returns the SSMA_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSSMAEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return settings.Duration(c.ShutdownTimeout)
}

// Load reads .env into the process environment without overriding
// variables already set, then reads config.toml and the config.<env>.toml
// overlay when present, and finalizes every section. Missing files are
// not an error: defaults and the environment can supply everything.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}
	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(EnvPrefix); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	settings.Overlay(&c.Version, overlay.Version)
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.Safety.Merge(&overlay.Safety)
}

// Finalize applies defaults and the environment overrides under prefix to
// every section and validates the result. An empty prefix skips the environment.
func (c *Config) Finalize(prefix string) error {
	settings.Default(&c.ShutdownTimeout, "30s")
	settings.Default(&c.Version, "0.1.0")
	settings.String(&c.ShutdownTimeout, settings.Key(prefix, "SHUTDOWN_TIMEOUT"))
	settings.String(&c.Version, settings.Key(prefix, "VERSION"))

	if err := settings.CheckDuration("shutdown_timeout", c.ShutdownTimeout); err != nil {
		return err
	}

	sections := []struct {
		name     string
		env      string
		finalize func(string) error
	}{
		{"server", "SERVER", c.Server.Finalize},
		{"database", "DB", c.Database.Finalize},
		{"storage", "STORAGE", c.Storage.Finalize},
		{"api", "API", c.API.Finalize},
		{"auth", "AUTH", c.Auth.Finalize},
		{"safety", "SAFETY", c.Safety.Finalize},
	}
	for _, s := range sections {
		if err := s.finalize(settings.Key(prefix, s.env)); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func overlayPath() string {
	env := os.Getenv(EnvSSMAEnv)
	if env == "" {
		return ""
	}
	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
