package openapi

import "github.com/JaimeStill/ssma/pkg/settings"

// Config holds the document title and description.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Finalize applies defaults and environment overrides read under prefix.
func (c *Config) Finalize(prefix string) error {
	settings.Default(&c.Title, "SSMA API")
	settings.Default(&c.Description, "Occupational health and safety records: trainings, PPE, medical exams, chemicals, JSAs, lawsuits, CIPA meetings, and accident statistics.")
	settings.String(&c.Title, settings.Key(prefix, "TITLE"))
	settings.String(&c.Description, settings.Key(prefix, "DESCRIPTION"))
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.Title, overlay.Title)
	settings.Overlay(&c.Description, overlay.Description)
}
