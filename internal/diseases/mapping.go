package diseases

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, employee_id, employee_name, department, icd_code, description, diagnosed_on,
	cat_issued, status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "occupational_diseases", "d").
	Project("id", "id").
	Project("employee_id", "employee_id").
	Project("employee_name", "employee_name").
	Project("department", "department").
	Project("icd_code", "icd_code").
	Project("description", "description").
	Project("diagnosed_on", "diagnosed_on").
	Project("cat_issued", "cat_issued").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "diagnosed_on", Descending: true}

var searchFields = safety.Fields[Disease]{
	"employee_name": func(d Disease) string { return d.EmployeeName },
	"department":    func(d Disease) string { return d.Department },
	"icd_code": func(d Disease) string {
		if d.ICDCode == nil {
			return ""
		}
		return *d.ICDCode
	},
	"description": func(d Disease) string { return d.Description },
}

type Filters struct {
	Status        *Status      `json:"status,omitempty"`
	EmployeeID    *string      `json:"employee_id,omitempty"`
	Department    *string      `json:"department,omitempty"`
	ICDCode       *string      `json:"icd_code,omitempty"`
	DiagnosedFrom *safety.Date `json:"diagnosed_from,omitempty"`
	DiagnosedTo   *safety.Date `json:"diagnosed_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("employee_id", f.EmployeeID).
		WhereEquals("icd_code", f.ICDCode).
		WhereContains("department", f.Department).
		WhereDateRange("diagnosed_on", f.DiagnosedFrom, f.DiagnosedTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseEnum(values.Get("status"), statuses, ErrInvalidStatus); err == nil {
		f.Status = &s
	}
	if v := values.Get("employee_id"); v != "" {
		f.EmployeeID = &v
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if v := values.Get("icd_code"); v != "" {
		f.ICDCode = &v
	}
	if d, err := safety.ParseDate(values.Get("diagnosed_from")); err == nil {
		f.DiagnosedFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("diagnosed_to")); err == nil {
		f.DiagnosedTo = &d
	}

	return f
}

func scanDisease(s repository.Scanner) (Disease, error) {
	var d Disease
	err := s.Scan(
		&d.ID,
		&d.EmployeeID,
		&d.EmployeeName,
		&d.Department,
		&d.ICDCode,
		&d.Description,
		&d.DiagnosedOn,
		&d.CATIssued,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
