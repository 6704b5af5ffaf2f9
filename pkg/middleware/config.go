package middleware

import "github.com/JaimeStill/ssma/pkg/settings"

// CORSConfig holds the cross-origin policy of an API module.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// Finalize applies defaults and environment overrides read under prefix.
func (c *CORSConfig) Finalize(prefix string) error {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type", "Authorization", RequestIDHeader}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}

	settings.Bool(&c.Enabled, settings.Key(prefix, "ENABLED"))
	settings.List(&c.Origins, settings.Key(prefix, "ORIGINS"))
	settings.List(&c.AllowedMethods, settings.Key(prefix, "ALLOWED_METHODS"))
	settings.List(&c.AllowedHeaders, settings.Key(prefix, "ALLOWED_HEADERS"))
	settings.Bool(&c.AllowCredentials, settings.Key(prefix, "ALLOW_CREDENTIALS"))
	settings.Int(&c.MaxAge, settings.Key(prefix, "MAX_AGE"))
	return nil
}

// Merge applies overlay. The overlay's booleans always win since an
// overlay file cannot express "unset" for them.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials
	settings.OverlaySlice(&c.Origins, overlay.Origins)
	settings.OverlaySlice(&c.AllowedMethods, overlay.AllowedMethods)
	settings.OverlaySlice(&c.AllowedHeaders, overlay.AllowedHeaders)
	settings.Overlay(&c.MaxAge, overlay.MaxAge)
}
