package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/JaimeStill/ssma/pkg/settings"
)

// ServerConfig holds HTTP listener parameters.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	IdleTimeout     string `toml:"idle_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return settings.Duration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return settings.Duration(c.WriteTimeout)
}

func (c *ServerConfig) IdleTimeoutDuration() time.Duration {
	return settings.Duration(c.IdleTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return settings.Duration(c.ShutdownTimeout)
}

// Finalize applies defaults, SSMA_SERVER_* overrides, and validation.
func (c *ServerConfig) Finalize(prefix string) error {
	settings.Default(&c.Host, "0.0.0.0")
	settings.Default(&c.Port, 8080)
	settings.Default(&c.ReadTimeout, "1m")
	settings.Default(&c.WriteTimeout, "5m")
	settings.Default(&c.IdleTimeout, "2m")
	settings.Default(&c.ShutdownTimeout, "30s")

	settings.String(&c.Host, settings.Key(prefix, "HOST"))
	settings.Int(&c.Port, settings.Key(prefix, "PORT"))
	settings.String(&c.ReadTimeout, settings.Key(prefix, "READ_TIMEOUT"))
	settings.String(&c.WriteTimeout, settings.Key(prefix, "WRITE_TIMEOUT"))
	settings.String(&c.IdleTimeout, settings.Key(prefix, "IDLE_TIMEOUT"))
	settings.String(&c.ShutdownTimeout, settings.Key(prefix, "SHUTDOWN_TIMEOUT"))

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for field, value := range map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if err := settings.CheckDuration(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	settings.Overlay(&c.Host, overlay.Host)
	settings.Overlay(&c.Port, overlay.Port)
	settings.Overlay(&c.ReadTimeout, overlay.ReadTimeout)
	settings.Overlay(&c.WriteTimeout, overlay.WriteTimeout)
	settings.Overlay(&c.IdleTimeout, overlay.IdleTimeout)
	settings.Overlay(&c.ShutdownTimeout, overlay.ShutdownTimeout)
}
