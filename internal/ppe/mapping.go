package ppe

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, employee_id, employee_name, department, equipment, ca_number, quantity,
	delivered_on, replace_by, returned_on, status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "ppe_issuances", "p").
	Project("id", "id").
	Project("employee_id", "employee_id").
	Project("employee_name", "employee_name").
	Project("department", "department").
	Project("equipment", "equipment").
	Project("ca_number", "ca_number").
	Project("quantity", "quantity").
	Project("delivered_on", "delivered_on").
	Project("replace_by", "replace_by").
	Project("returned_on", "returned_on").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "replace_by"}

var searchFields = safety.Fields[Issuance]{
	"employee_name": func(i Issuance) string { return i.EmployeeName },
	"equipment":     func(i Issuance) string { return i.Equipment },
	"ca_number": func(i Issuance) string {
		if i.CANumber == nil {
			return ""
		}
		return *i.CANumber
	},
	"department": func(i Issuance) string { return i.Department },
}

// Filters contains optional filtering criteria for issuance queries.
type Filters struct {
	Status      *safety.Status `json:"status,omitempty"`
	EmployeeID  *string        `json:"employee_id,omitempty"`
	Department  *string        `json:"department,omitempty"`
	Equipment   *string        `json:"equipment,omitempty"`
	CANumber    *string        `json:"ca_number,omitempty"`
	ReplaceFrom *safety.Date   `json:"replace_from,omitempty"`
	ReplaceTo   *safety.Date   `json:"replace_to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("employee_id", f.EmployeeID).
		WhereEquals("ca_number", f.CANumber).
		WhereContains("department", f.Department).
		WhereContains("equipment", f.Equipment).
		WhereDateRange("replace_by", f.ReplaceFrom, f.ReplaceTo)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseStatus(values.Get("status")); err == nil {
		f.Status = &s
	}
	if v := values.Get("employee_id"); v != "" {
		f.EmployeeID = &v
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if v := values.Get("equipment"); v != "" {
		f.Equipment = &v
	}
	if v := values.Get("ca_number"); v != "" {
		f.CANumber = &v
	}
	if d, err := safety.ParseDate(values.Get("replace_from")); err == nil {
		f.ReplaceFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("replace_to")); err == nil {
		f.ReplaceTo = &d
	}

	return f
}

func scanIssuance(s repository.Scanner) (Issuance, error) {
	var i Issuance
	err := s.Scan(
		&i.ID,
		&i.EmployeeID,
		&i.EmployeeName,
		&i.Department,
		&i.Equipment,
		&i.CANumber,
		&i.Quantity,
		&i.DeliveredOn,
		&i.ReplaceBy,
		&i.ReturnedOn,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
