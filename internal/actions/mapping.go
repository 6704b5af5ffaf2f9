package actions

import (
	"net/url"

	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, title, description, origin, responsible, department, due_on, completed_on,
	status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "actions", "a").
	Project("id", "id").
	Project("title", "title").
	Project("description", "description").
	Project("origin", "origin").
	Project("responsible", "responsible").
	Project("department", "department").
	Project("due_on", "due_on").
	Project("completed_on", "completed_on").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "due_on"}

var searchFields = safety.Fields[Action]{
	"title":       func(a Action) string { return a.Title },
	"description": func(a Action) string { return lo.FromPtr(a.Description) },
	"origin":      func(a Action) string { return lo.FromPtr(a.Origin) },
	"responsible": func(a Action) string { return a.Responsible },
	"department":  func(a Action) string { return lo.FromPtr(a.Department) },
}

type Filters struct {
	Status      *safety.ActionStatus `json:"status,omitempty"`
	Responsible *string              `json:"responsible,omitempty"`
	Department  *string              `json:"department,omitempty"`
	Origin      *string              `json:"origin,omitempty"`
	DueFrom     *safety.Date         `json:"due_from,omitempty"`
	DueTo       *safety.Date         `json:"due_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereContains("responsible", f.Responsible).
		WhereEquals("department", f.Department).
		WhereEquals("origin", f.Origin).
		WhereDateRange("due_on", f.DueFrom, f.DueTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseActionStatus(values.Get("status")); err == nil {
		f.Status = &s
	}
	if v := values.Get("responsible"); v != "" {
		f.Responsible = &v
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if v := values.Get("origin"); v != "" {
		f.Origin = &v
	}
	if d, err := safety.ParseDate(values.Get("due_from")); err == nil {
		f.DueFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("due_to")); err == nil {
		f.DueTo = &d
	}

	return f
}

func scanAction(s repository.Scanner) (Action, error) {
	var a Action
	err := s.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Origin,
		&a.Responsible,
		&a.Department,
		&a.DueOn,
		&a.CompletedOn,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
