package pagination

import (
	"fmt"

	"github.com/JaimeStill/ssma/pkg/settings"
)

// Config bounds the page size clients may request.
type Config struct {
	DefaultPageSize int `toml:"default_page_size" json:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size" json:"max_page_size"`
}

// Finalize applies defaults, environment overrides read under prefix, and validation.
func (c *Config) Finalize(prefix string) error {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
	settings.Int(&c.DefaultPageSize, settings.Key(prefix, "DEFAULT_PAGE_SIZE"))
	settings.Int(&c.MaxPageSize, settings.Key(prefix, "MAX_PAGE_SIZE"))

	switch {
	case c.DefaultPageSize < 1:
		return fmt.Errorf("default_page_size must be positive")
	case c.MaxPageSize < 1:
		return fmt.Errorf("max_page_size must be positive")
	case c.DefaultPageSize > c.MaxPageSize:
		return fmt.Errorf("default_page_size cannot exceed max_page_size")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.DefaultPageSize, overlay.DefaultPageSize)
	settings.Overlay(&c.MaxPageSize, overlay.MaxPageSize)
}
