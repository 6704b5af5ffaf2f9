package exams

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, employee_id, employee_name, department, kind, result, physician, crm,
	issued_on, expires_on, status, ` + attachments.ColumnNames + `, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "exams", "e").
	Project("id", "id").
	Project("employee_id", "employee_id").
	Project("employee_name", "employee_name").
	Project("department", "department").
	Project("kind", "kind").
	Project("result", "result").
	Project("physician", "physician").
	Project("crm", "crm").
	Project("issued_on", "issued_on").
	Project("expires_on", "expires_on").
	Project("status", "status").
	Project("attachment_key", "attachment_key").
	Project("attachment_filename", "attachment_filename").
	Project("attachment_content_type", "attachment_content_type").
	Project("attachment_size_bytes", "attachment_size_bytes").
	Project("attachment_page_count", "attachment_page_count").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "expires_on"}

var searchFields = safety.Fields[Exam]{
	"employee_name": func(e Exam) string { return e.EmployeeName },
	"department":    func(e Exam) string { return e.Department },
	"physician": func(e Exam) string {
		if e.Physician == nil {
			return ""
		}
		return *e.Physician
	},
	"kind": func(e Exam) string { return string(e.Kind) },
}

// Filters contains optional filtering criteria for exam queries.
type Filters struct {
	Status      *safety.Status `json:"status,omitempty"`
	Kind        *Kind          `json:"kind,omitempty"`
	Result      *Result        `json:"result,omitempty"`
	EmployeeID  *string        `json:"employee_id,omitempty"`
	Department  *string        `json:"department,omitempty"`
	ExpiresFrom *safety.Date   `json:"expires_from,omitempty"`
	ExpiresTo   *safety.Date   `json:"expires_to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("kind", f.Kind).
		WhereEquals("result", f.Result).
		WhereEquals("employee_id", f.EmployeeID).
		WhereContains("department", f.Department).
		WhereDateRange("expires_on", f.ExpiresFrom, f.ExpiresTo)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseStatus(values.Get("status")); err == nil {
		f.Status = &s
	}
	if k, err := safety.ParseEnum(values.Get("kind"), kinds, ErrInvalidKind); err == nil {
		f.Kind = &k
	}
	if r, err := safety.ParseEnum(values.Get("result"), results, ErrInvalidResult); err == nil {
		f.Result = &r
	}
	if v := values.Get("employee_id"); v != "" {
		f.EmployeeID = &v
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if d, err := safety.ParseDate(values.Get("expires_from")); err == nil {
		f.ExpiresFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("expires_to")); err == nil {
		f.ExpiresTo = &d
	}

	return f
}

func scanExam(s repository.Scanner) (Exam, error) {
	var e Exam
	var att attachments.Columns
	dest := []any{
		&e.ID,
		&e.EmployeeID,
		&e.EmployeeName,
		&e.Department,
		&e.Kind,
		&e.Result,
		&e.Physician,
		&e.CRM,
		&e.IssuedOn,
		&e.ExpiresOn,
		&e.Status,
	}
	dest = append(dest, att.Targets()...)
	dest = append(dest, &e.CreatedAt, &e.UpdatedAt)

	if err := s.Scan(dest...); err != nil {
		return e, err
	}
	e.Attachment = att.Attachment()
	return e, nil
}
