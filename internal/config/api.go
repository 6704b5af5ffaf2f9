package config

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/JaimeStill/ssma/pkg/middleware"
	"github.com/JaimeStill/ssma/pkg/openapi"
	"github.com/JaimeStill/ssma/pkg/pagination"
	"github.com/JaimeStill/ssma/pkg/settings"
)

// APIConfig holds API routing, upload, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes parses MaxUploadSize ("50MB", "20 MiB").
// Finalize has already rejected unparseable values.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	n, _ := humanize.ParseBytes(c.MaxUploadSize)
	return int64(n)
}

// Finalize applies defaults, SSMA_API_* overrides, and validation for the
// API config and its nested sections.
func (c *APIConfig) Finalize(prefix string) error {
	settings.Default(&c.BasePath, "/api")
	settings.Default(&c.MaxUploadSize, "50MB")
	settings.String(&c.BasePath, settings.Key(prefix, "BASE_PATH"))
	settings.String(&c.MaxUploadSize, settings.Key(prefix, "MAX_UPLOAD_SIZE"))

	n, err := humanize.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}

	if err := c.CORS.Finalize(settings.Key(prefix, "CORS")); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(settings.Key(prefix, "PAGINATION")); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(settings.Key(prefix, "OPENAPI")); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	settings.Overlay(&c.BasePath, overlay.BasePath)
	settings.Overlay(&c.MaxUploadSize, overlay.MaxUploadSize)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
