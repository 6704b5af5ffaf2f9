package cipa

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const actionColumns = `id, meeting_id, description, responsible, deadline, status`

var projection = query.
	NewProjectionMap("public", "cipa_meetings", "m").
	Project("id", "id").
	Project("title", "title").
	Project("location", "location").
	Project("agenda", "agenda").
	Project("minutes", "minutes").
	Project("meeting_on", "meeting_on").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "meeting_on", Descending: true}

var searchFields = safety.Fields[Meeting]{
	"title":    func(m Meeting) string { return m.Title },
	"location": func(m Meeting) string { return lo.FromPtr(m.Location) },
	"agenda":   func(m Meeting) string { return lo.FromPtr(m.Agenda) },
	"responsible": func(m Meeting) string {
		return lo.Reduce(m.Actions, func(acc string, a Action, _ int) string { return acc + " " + a.Responsible }, "")
	},
}

type Filters struct {
	Status      *MeetingStatus `json:"status,omitempty"`
	Title       *string        `json:"title,omitempty"`
	MeetingFrom *safety.Date   `json:"meeting_from,omitempty"`
	MeetingTo   *safety.Date   `json:"meeting_to,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereContains("title", f.Title).
		WhereDateRange("meeting_on", f.MeetingFrom, f.MeetingTo)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseEnum(values.Get("status"), meetingStatuses, ErrInvalidMeetingStatus); err == nil {
		f.Status = &s
	}
	if v := values.Get("title"); v != "" {
		f.Title = &v
	}
	if d, err := safety.ParseDate(values.Get("meeting_from")); err == nil {
		f.MeetingFrom = &d
	}
	if d, err := safety.ParseDate(values.Get("meeting_to")); err == nil {
		f.MeetingTo = &d
	}

	return f
}

func scanMeeting(s repository.Scanner) (Meeting, error) {
	var m Meeting
	err := s.Scan(
		&m.ID,
		&m.Title,
		&m.Location,
		&m.Agenda,
		&m.Minutes,
		&m.MeetingOn,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	m.Actions = []Action{}
	return m, err
}

type actionRow struct {
	Action
	meetingID uuid.UUID
}

func scanAction(s repository.Scanner) (actionRow, error) {
	var a actionRow
	err := s.Scan(
		&a.ID,
		&a.meetingID,
		&a.Description,
		&a.Responsible,
		&a.Deadline,
		&a.Status,
	)
	return a, err
}
