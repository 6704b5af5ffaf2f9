package jsa

import (
	"net/url"

	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, task, department, responsible, steps, review_on, status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "job_safety_analyses", "j").
	Project("id", "id").
	Project("task", "task").
	Project("department", "department").
	Project("responsible", "responsible").
	Project("steps", "steps").
	Project("review_on", "review_on").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "review_on"}

// searchFields also exposes "hazard", matching any step's hazard text.
var searchFields = safety.Fields[Analysis]{
	"task":        func(a Analysis) string { return a.Task },
	"department":  func(a Analysis) string { return a.Department },
	"responsible": func(a Analysis) string { return a.Responsible },
	"hazard": func(a Analysis) string {
		return lo.Reduce(a.Steps, func(acc string, s Step, _ int) string { return acc + " " + s.Hazard }, "")
	},
}

type Filters struct {
	Status      *safety.Status `json:"status,omitempty"`
	Department  *string        `json:"department,omitempty"`
	Responsible *string        `json:"responsible,omitempty"`
	ReviewFrom  *safety.Date   `json:"review_from,omitempty"`
	ReviewTo    *safety.Date   `json:"review_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereContains("department", f.Department).
		WhereContains("responsible", f.Responsible).
		WhereDateRange("review_on", f.ReviewFrom, f.ReviewTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseStatus(values.Get("status")); err == nil {
		f.Status = &s
	}
	if v := values.Get("department"); v != "" {
		f.Department = &v
	}
	if v := values.Get("responsible"); v != "" {
		f.Responsible = &v
	}
	if d, err := safety.ParseDate(values.Get("review_from")); err == nil {
		f.ReviewFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("review_to")); err == nil {
		f.ReviewTo = &d
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.Task,
		&a.Department,
		&a.Responsible,
		&a.Steps,
		&a.ReviewOn,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
