package storage

import (
	"fmt"
	"net/url"
	"time"

	"github.com/JaimeStill/ssma/pkg/settings"
)

// Config locates the attachment container. Either ConnectionString or
// AccountURL must be set; AccountURL authenticates through the default
// Azure credential chain.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	MaxRetries       int    `toml:"max_retries"`
	TryTimeout       string `toml:"try_timeout"`
}

// TryTimeoutDuration returns TryTimeout as a time.Duration.
func (c *Config) TryTimeoutDuration() time.Duration {
	return settings.Duration(c.TryTimeout)
}

// Finalize applies defaults, environment overrides read under prefix, and validation.
func (c *Config) Finalize(prefix string) error {
	settings.Default(&c.ContainerName, "attachments")
	settings.Default(&c.MaxRetries, 3)
	settings.Default(&c.TryTimeout, "1m")
	settings.String(&c.ContainerName, settings.Key(prefix, "CONTAINER_NAME"))
	settings.String(&c.ConnectionString, settings.Key(prefix, "CONNECTION_STRING"))
	settings.String(&c.AccountURL, settings.Key(prefix, "ACCOUNT_URL"))
	settings.Int(&c.MaxRetries, settings.Key(prefix, "MAX_RETRIES"))
	settings.String(&c.TryTimeout, settings.Key(prefix, "TRY_TIMEOUT"))
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.ContainerName, overlay.ContainerName)
	settings.Overlay(&c.ConnectionString, overlay.ConnectionString)
	settings.Overlay(&c.AccountURL, overlay.AccountURL)
	settings.Overlay(&c.MaxRetries, overlay.MaxRetries)
	settings.Overlay(&c.TryTimeout, overlay.TryTimeout)
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if err := settings.CheckDuration("try_timeout", c.TryTimeout); err != nil {
		return err
	}
	if c.ConnectionString == "" && c.AccountURL == "" {
		return fmt.Errorf("connection_string or account_url required")
	}
	if c.ConnectionString == "" {
		u, err := url.Parse(c.AccountURL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("account_url must be an https URL: %q", c.AccountURL)
		}
	}
	return nil
}
