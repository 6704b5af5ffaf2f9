package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JaimeStill/ssma/pkg/settings"
)

// Config holds PostgreSQL connection and pool parameters.
// When URL is set it is used verbatim and the individual connection
// fields are ignored.
type Config struct {
	URL             string `toml:"url"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	ApplicationName string `toml:"application_name"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
	ConnectRetries  int    `toml:"connect_retries"`
}

// ConnMaxLifetimeDuration returns ConnMaxLifetime as a time.Duration.
func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	return settings.Duration(c.ConnMaxLifetime)
}

// ConnTimeoutDuration returns ConnTimeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	return settings.Duration(c.ConnTimeout)
}

// Dsn returns the connection string in postgres:// URL form.
func (c *Config) Dsn() string {
	if c.URL != "" {
		return c.URL
	}

	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}
	if secs := int(c.ConnTimeoutDuration().Seconds()); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// ConnConfig parses Dsn into a pgx connection config.
func (c *Config) ConnConfig() (*pgx.ConnConfig, error) {
	return pgx.ParseConfig(c.Dsn())
}

// Finalize applies defaults, environment overrides read under prefix, and validation.
func (c *Config) Finalize(prefix string) error {
	c.loadDefaults()
	c.loadEnv(prefix)
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.URL, overlay.URL)
	settings.Overlay(&c.Host, overlay.Host)
	settings.Overlay(&c.Port, overlay.Port)
	settings.Overlay(&c.Name, overlay.Name)
	settings.Overlay(&c.User, overlay.User)
	settings.Overlay(&c.Password, overlay.Password)
	settings.Overlay(&c.SSLMode, overlay.SSLMode)
	settings.Overlay(&c.ApplicationName, overlay.ApplicationName)
	settings.Overlay(&c.MaxOpenConns, overlay.MaxOpenConns)
	settings.Overlay(&c.MaxIdleConns, overlay.MaxIdleConns)
	settings.Overlay(&c.ConnMaxLifetime, overlay.ConnMaxLifetime)
	settings.Overlay(&c.ConnTimeout, overlay.ConnTimeout)
	settings.Overlay(&c.ConnectRetries, overlay.ConnectRetries)
}

func (c *Config) loadDefaults() {
	settings.Default(&c.Host, "localhost")
	settings.Default(&c.Port, 5432)
	settings.Default(&c.SSLMode, "disable")
	settings.Default(&c.ApplicationName, "ssma")
	settings.Default(&c.MaxOpenConns, 25)
	settings.Default(&c.MaxIdleConns, 5)
	settings.Default(&c.ConnMaxLifetime, "15m")
	settings.Default(&c.ConnTimeout, "5s")
	settings.Default(&c.ConnectRetries, 3)
}

func (c *Config) loadEnv(prefix string) {
	settings.String(&c.URL, settings.Key(prefix, "URL"))
	settings.String(&c.Host, settings.Key(prefix, "HOST"))
	settings.Int(&c.Port, settings.Key(prefix, "PORT"))
	settings.String(&c.Name, settings.Key(prefix, "NAME"))
	settings.String(&c.User, settings.Key(prefix, "USER"))
	settings.String(&c.Password, settings.Key(prefix, "PASSWORD"))
	settings.String(&c.SSLMode, settings.Key(prefix, "SSL_MODE"))
	settings.String(&c.ApplicationName, settings.Key(prefix, "APPLICATION_NAME"))
	settings.Int(&c.MaxOpenConns, settings.Key(prefix, "MAX_OPEN_CONNS"))
	settings.Int(&c.MaxIdleConns, settings.Key(prefix, "MAX_IDLE_CONNS"))
	settings.String(&c.ConnMaxLifetime, settings.Key(prefix, "CONN_MAX_LIFETIME"))
	settings.String(&c.ConnTimeout, settings.Key(prefix, "CONN_TIMEOUT"))
	settings.Int(&c.ConnectRetries, settings.Key(prefix, "CONNECT_RETRIES"))
}

func (c *Config) validate() error {
	if c.URL == "" {
		if c.Name == "" {
			return fmt.Errorf("name required")
		}
		if c.User == "" {
			return fmt.Errorf("user required")
		}
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max_idle_conns cannot exceed max_open_conns")
	}
	if c.ConnectRetries < 0 {
		return fmt.Errorf("connect_retries must not be negative")
	}
	if err := settings.CheckDuration("conn_max_lifetime", c.ConnMaxLifetime); err != nil {
		return err
	}
	if err := settings.CheckDuration("conn_timeout", c.ConnTimeout); err != nil {
		return err
	}
	if _, err := c.ConnConfig(); err != nil {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	return nil
}
