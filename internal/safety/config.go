package safety

import (
	"fmt"
	"time"

	"github.com/JaimeStill/ssma/pkg/settings"
)

// Config holds the tunable classification and search settings.
type Config struct {
	ExpiringSoonWindowDays int                 `toml:"expiring_soon_window_days" json:"expiring_soon_window_days"`
	MissingDateStatus      Status              `toml:"missing_date_status" json:"missing_date_status"`
	OverrideStatuses       []Status            `toml:"override_statuses" json:"override_statuses"`
	Timezone               string              `toml:"timezone" json:"timezone"`
	RefreshInterval        string              `toml:"refresh_interval" json:"refresh_interval"`
	Search                 map[string][]string `toml:"search" json:"search"`
}

// DefaultSearch lists the searchable fields of each record kind.
func DefaultSearch() map[string][]string {
	return map[string][]string{
		"trainings": {"employee_name", "course", "nr", "department", "instructor"},
		"ppe":       {"employee_name", "equipment", "ca_number", "department"},
		"exams":     {"employee_name", "department", "physician", "kind"},
		"chemicals": {"name", "manufacturer", "cas_number", "location", "hazard_class"},
		"jsa":       {"task", "department", "responsible"},
		"lawsuits":  {"case_number", "plaintiff", "court", "subject", "nr"},
		"diseases":  {"employee_name", "department", "icd_code", "description"},
		"documents": {"title", "category", "description", "filename"},
		"cipa":      {"title", "location", "agenda"},
		"actions":   {"title", "description", "responsible", "department", "origin"},
		"accidents": {"employee_name", "department", "kind", "cause"},
	}
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RefreshIntervalDuration returns RefreshInterval as a time.Duration.
func (c *Config) RefreshIntervalDuration() time.Duration {
	return settings.Duration(c.RefreshInterval)
}

// SearchFields returns the searchable field names for kind.
func (c *Config) SearchFields(kind string) []string {
	return c.Search[kind]
}

// Finalize applies environment overrides read under prefix, then defaults,
// then validation. A zero window from either TOML or the environment is
// treated as unset and falls back to the default.
func (c *Config) Finalize(prefix string) error {
	c.loadEnv(prefix)
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Search lists merge per kind.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.ExpiringSoonWindowDays, overlay.ExpiringSoonWindowDays)
	settings.Overlay(&c.MissingDateStatus, overlay.MissingDateStatus)
	settings.OverlaySlice(&c.OverrideStatuses, overlay.OverrideStatuses)
	settings.Overlay(&c.Timezone, overlay.Timezone)
	settings.Overlay(&c.RefreshInterval, overlay.RefreshInterval)
	if len(overlay.Search) > 0 && c.Search == nil {
		c.Search = make(map[string][]string, len(overlay.Search))
	}
	for kind, fields := range overlay.Search {
		c.Search[kind] = fields
	}
}

func (c *Config) loadDefaults() {
	settings.Default(&c.ExpiringSoonWindowDays, 30)
	settings.Default(&c.MissingDateStatus, StatusValid)
	if c.OverrideStatuses == nil {
		c.OverrideStatuses = []Status{StatusUnderReview, StatusArchived}
	}
	settings.Default(&c.Timezone, "UTC")
	settings.Default(&c.RefreshInterval, "24h")
	if c.Search == nil {
		c.Search = make(map[string][]string)
	}
	for kind, fields := range DefaultSearch() {
		if _, ok := c.Search[kind]; !ok {
			c.Search[kind] = fields
		}
	}
}

func (c *Config) loadEnv(prefix string) {
	settings.Int(&c.ExpiringSoonWindowDays, settings.Key(prefix, "EXPIRING_SOON_WINDOW_DAYS"))
	settings.String(&c.MissingDateStatus, settings.Key(prefix, "MISSING_DATE_STATUS"))
	settings.List(&c.OverrideStatuses, settings.Key(prefix, "OVERRIDE_STATUSES"))
	settings.String(&c.Timezone, settings.Key(prefix, "TIMEZONE"))
	settings.String(&c.RefreshInterval, settings.Key(prefix, "REFRESH_INTERVAL"))
}

func (c *Config) validate() error {
	if c.ExpiringSoonWindowDays < 0 {
		return fmt.Errorf("expiring_soon_window_days must not be negative")
	}
	if _, err := ParseStatus(string(c.MissingDateStatus)); err != nil {
		return fmt.Errorf("missing_date_status: %w", err)
	}
	for _, s := range c.OverrideStatuses {
		if _, err := ParseStatus(string(s)); err != nil {
			return fmt.Errorf("override_statuses: %w", err)
		}
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	return settings.CheckDuration("refresh_interval", c.RefreshInterval)
}
