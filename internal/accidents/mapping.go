package accidents

import (
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, employee_id, employee_name, department, occurred_on, kind, lost_time, days_off,
	cause, description, cat_number, status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "accidents", "a").
	Project("id", "id").
	Project("employee_id", "employee_id").
	Project("employee_name", "employee_name").
	Project("department", "department").
	Project("occurred_on", "occurred_on").
	Project("kind", "kind").
	Project("lost_time", "lost_time").
	Project("days_off", "days_off").
	Project("cause", "cause").
	Project("description", "description").
	Project("cat_number", "cat_number").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "occurred_on", Descending: true}

var searchFields = safety.Fields[Accident]{
	"employee_name": func(a Accident) string { return a.EmployeeName },
	"department":    func(a Accident) string { return lo.FromPtr(a.Department) },
	"kind":          func(a Accident) string { return string(a.Kind) },
	"cause":         func(a Accident) string { return lo.FromPtr(a.Cause) },
	"description":   func(a Accident) string { return lo.FromPtr(a.Description) },
	"cat_number":    func(a Accident) string { return lo.FromPtr(a.CATNumber) },
}

type Filters struct {
	Kind         *Kind          `json:"kind,omitempty"`
	Status       *Investigation `json:"status,omitempty"`
	EmployeeID   *string        `json:"employee_id,omitempty"`
	Department   *string        `json:"department,omitempty"`
	LostTime     *bool          `json:"lost_time,omitempty"`
	OccurredFrom *safety.Date   `json:"occurred_from,omitempty"`
	OccurredTo   *safety.Date   `json:"occurred_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("kind", f.Kind).
		WhereEquals("status", f.Status).
		WhereEquals("employee_id", f.EmployeeID).
		WhereEquals("department", f.Department).
		WhereEquals("lost_time", f.LostTime).
		WhereDateRange("occurred_on", f.OccurredFrom, f.OccurredTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k, err := safety.ParseEnum(values.Get("kind"), kinds, ErrInvalidKind); err == nil {
		f.Kind = &k
	}
	if s, err := safety.ParseEnum(values.Get("status"), investigations, ErrInvalidInvestigation); err == nil {
		f.Status = &s
	}
	if v := values.Get("employee_id"); v != "" {
		f.EmployeeID = &v
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if b, err := strconv.ParseBool(values.Get("lost_time")); err == nil {
		f.LostTime = &b
	}
	if d, err := safety.ParseDate(values.Get("occurred_from")); err == nil {
		f.OccurredFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("occurred_to")); err == nil {
		f.OccurredTo = &d
	}

	return f
}

func scanAccident(s repository.Scanner) (Accident, error) {
	var a Accident
	err := s.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.EmployeeName,
		&a.Department,
		&a.OccurredOn,
		&a.Kind,
		&a.LostTime,
		&a.DaysOff,
		&a.Cause,
		&a.Description,
		&a.CATNumber,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
