package trainings

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, employee_id, employee_name, department, course, nr, instructor, workload_hours,
	completed_on, expires_on, status, ` + attachments.ColumnNames + `, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "trainings", "t").
	Project("id", "id").
	Project("employee_id", "employee_id").
	Project("employee_name", "employee_name").
	Project("department", "department").
	Project("course", "course").
	Project("nr", "nr").
	Project("instructor", "instructor").
	Project("workload_hours", "workload_hours").
	Project("completed_on", "completed_on").
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

// searchFields resolves configured search field names to in-memory accessors.
var searchFields = safety.Fields[Training]{
	"employee_name": func(t Training) string { return t.EmployeeName },
	"course":        func(t Training) string { return t.Course },
	"nr":            func(t Training) string { return deref(t.NR) },
	"department":    func(t Training) string { return t.Department },
	"instructor":    func(t Training) string { return deref(t.Instructor) },
}

// Filters contains optional filtering criteria for training queries.
// Status, EmployeeID, and NR use exact matching; Department and Course
// use case-insensitive contains matching. ExpiresFrom and ExpiresTo bound
// expires_on inclusively.
type Filters struct {
	Status      *safety.Status `json:"status,omitempty"`
	EmployeeID  *string        `json:"employee_id,omitempty"`
	NR          *string        `json:"nr,omitempty"`
	Department  *string        `json:"department,omitempty"`
	Course      *string        `json:"course,omitempty"`
	ExpiresFrom *safety.Date   `json:"expires_from,omitempty"`
	ExpiresTo   *safety.Date   `json:"expires_to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("employee_id", f.EmployeeID).
		WhereEquals("nr", f.NR).
		WhereContains("department", f.Department).
		WhereContains("course", f.Course).
		WhereDateRange("expires_on", f.ExpiresFrom, f.ExpiresTo)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseStatus(values.Get("status")); err == nil {
		f.Status = &s
	}
	if v := values.Get("employee_id"); v != "" {
		f.EmployeeID = &v
	}
	if v := values.Get("nr"); v != "" {
		f.NR = &v
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if v := values.Get("course"); v != "" {
		f.Course = &v
	}
	if d, err := safety.ParseDate(values.Get("expires_from")); err == nil {
		f.ExpiresFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("expires_to")); err == nil {
		f.ExpiresTo = &d
	}

	return f
}

func scanTraining(s repository.Scanner) (Training, error) {
	var t Training
	var att attachments.Columns
	dest := []any{
		&t.ID,
		&t.EmployeeID,
		&t.EmployeeName,
		&t.Department,
		&t.Course,
		&t.NR,
		&t.Instructor,
		&t.WorkloadHours,
		&t.CompletedOn,
		&t.ExpiresOn,
		&t.Status,
	}
	dest = append(dest, att.Targets()...)
	dest = append(dest, &t.CreatedAt, &t.UpdatedAt)

	if err := s.Scan(dest...); err != nil {
		return t, err
	}
	t.Attachment = att.Attachment()
	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
