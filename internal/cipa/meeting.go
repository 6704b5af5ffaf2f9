// Package cipa records the meetings of the internal accident prevention
// commission (CIPA) and the follow-up actions agreed in each meeting.
// Follow-up action statuses become overdue once their deadline passes.
package cipa

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingHeld      MeetingStatus = "held"
	MeetingCancelled MeetingStatus = "cancelled"
)

var (
	meetingStatuses = []MeetingStatus{MeetingScheduled, MeetingHeld, MeetingCancelled}

	ErrInvalidMeetingStatus = errors.New("meeting status must be scheduled, held, or cancelled")
)

func (s *MeetingStatus) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, s, meetingStatuses, ErrInvalidMeetingStatus)
}

// Action is a follow-up agreed in a meeting.
type Action struct {
	ID          uuid.UUID           `json:"id"`
	Description string              `json:"description"`
	Responsible string              `json:"responsible"`
	Deadline    *safety.Date        `json:"deadline"`
	Status      safety.ActionStatus `json:"status"`
}

type Meeting struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Location  *string       `json:"location"`
	Agenda    *string       `json:"agenda"`
	Minutes   *string       `json:"minutes"`
	MeetingOn safety.Date   `json:"meeting_on"`
	Status    MeetingStatus `json:"status"`
	Actions   []Action      `json:"actions"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ActionCommand describes a follow-up action. The stored status is derived
// from Status and Deadline.
type ActionCommand struct {
	Description string              `json:"description" validate:"required,max=1000"`
	Responsible string              `json:"responsible" validate:"required,max=200"`
	Deadline    *safety.Date        `json:"deadline"`
	Status      safety.ActionStatus `json:"status"`
}

// Command replaces a meeting and its complete action list.
type Command struct {
	Title     string          `json:"title" validate:"required,max=200"`
	Location  *string         `json:"location" validate:"omitempty,max=200"`
	Agenda    *string         `json:"agenda" validate:"omitempty,max=4000"`
	Minutes   *string         `json:"minutes"`
	MeetingOn safety.Date     `json:"meeting_on" validate:"required"`
	Status    MeetingStatus   `json:"status"`
	Actions   []ActionCommand `json:"actions" validate:"dive"`
}

type Summary struct {
	Total    int                   `json:"total"`
	ByStatus map[MeetingStatus]int `json:"by_status"`
	Actions  safety.ActionCounts   `json:"actions"`
}
