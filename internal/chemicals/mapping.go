package chemicals

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, name, manufacturer, cas_number, hazard_class, location, quantity, unit,
	sds_revised_on, expires_on, status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "chemicals", "c").
	Project("id", "id").
	Project("name", "name").
	Project("manufacturer", "manufacturer").
	Project("cas_number", "cas_number").
	Project("hazard_class", "hazard_class").
	Project("location", "location").
	Project("quantity", "quantity").
	Project("unit", "unit").
	Project("sds_revised_on", "sds_revised_on").
	Project("expires_on", "expires_on").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "name"}

var searchFields = safety.Fields[Chemical]{
	"name":         func(c Chemical) string { return c.Name },
	"manufacturer": func(c Chemical) string { return str(c.Manufacturer) },
	"cas_number":   func(c Chemical) string { return str(c.CASNumber) },
	"location":     func(c Chemical) string { return c.Location },
	"hazard_class": func(c Chemical) string { return str(c.HazardClass) },
}

// Filters contains optional filtering criteria for chemical queries.
type Filters struct {
	Status      *safety.Status `json:"status,omitempty"`
	CASNumber   *string        `json:"cas_number,omitempty"`
	Location    *string        `json:"location,omitempty"`
	HazardClass *string        `json:"hazard_class,omitempty"`
	ExpiresFrom *safety.Date   `json:"expires_from,omitempty"`
	ExpiresTo   *safety.Date   `json:"expires_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("cas_number", f.CASNumber).
		WhereContains("location", f.Location).
		WhereContains("hazard_class", f.HazardClass).
		WhereDateRange("expires_on", f.ExpiresFrom, f.ExpiresTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseStatus(values.Get("status")); err == nil {
		f.Status = &s
	}
	if v := values.Get("cas_number"); v != "" {
		f.CASNumber = &v
	}
	if v := values.Get("location"); v != "" {
		f.Location = &v
	}
	if v := values.Get("hazard_class"); v != "" {
		f.HazardClass = &v
	}
	if d, err := safety.ParseDate(values.Get("expires_from")); err == nil {
		f.ExpiresFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("expires_to")); err == nil {
		f.ExpiresTo = &d
	}

	return f
}

func scanChemical(s repository.Scanner) (Chemical, error) {
	var c Chemical
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Manufacturer,
		&c.CASNumber,
		&c.HazardClass,
		&c.Location,
		&c.Quantity,
		&c.Unit,
		&c.SDSRevisedOn,
		&c.ExpiresOn,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
