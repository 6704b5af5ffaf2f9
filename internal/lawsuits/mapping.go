package lawsuits

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, case_number, plaintiff, court, subject, nr, filed_on, next_hearing_on,
	claim_amount, status, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "lawsuits", "l").
	Project("id", "id").
	Project("case_number", "case_number").
	Project("plaintiff", "plaintiff").
	Project("court", "court").
	Project("subject", "subject").
	Project("nr", "nr").
	Project("filed_on", "filed_on").
	Project("next_hearing_on", "next_hearing_on").
	Project("claim_amount", "claim_amount").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "filed_on", Descending: true}

var searchFields = safety.Fields[Lawsuit]{
	"case_number": func(l Lawsuit) string { return l.CaseNumber },
	"plaintiff":   func(l Lawsuit) string { return l.Plaintiff },
	"court":       func(l Lawsuit) string { return str(l.Court) },
	"subject":     func(l Lawsuit) string { return l.Subject },
	"nr":          func(l Lawsuit) string { return str(l.NR) },
}

type Filters struct {
	Status    *Status      `json:"status,omitempty"`
	NR        *string      `json:"nr,omitempty"`
	Court     *string      `json:"court,omitempty"`
	FiledFrom *safety.Date `json:"filed_from,omitempty"`
	FiledTo   *safety.Date `json:"filed_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("nr", f.NR).
		WhereContains("court", f.Court).
		WhereDateRange("filed_on", f.FiledFrom, f.FiledTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseEnum(values.Get("status"), statuses, ErrInvalidStatus); err == nil {
		f.Status = &s
	}
	if v := values.Get("nr"); v != "" {
		f.NR = &v
	}
	if v := values.Get("court"); v != "" {
		f.Court = &v
	}
	if d, err := safety.ParseDate(values.Get("filed_from")); err == nil {
		f.FiledFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("filed_to")); err == nil {
		f.FiledTo = &d
	}

	return f
}

func scanLawsuit(s repository.Scanner) (Lawsuit, error) {
	var l Lawsuit
	err := s.Scan(
		&l.ID,
		&l.CaseNumber,
		&l.Plaintiff,
		&l.Court,
		&l.Subject,
		&l.NR,
		&l.FiledOn,
		&l.NextHearingOn,
		&l.ClaimAmount,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
