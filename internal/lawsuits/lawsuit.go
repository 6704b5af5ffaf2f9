// Package lawsuits tracks labor lawsuits related to occupational safety.
// Lawsuit status is set by users; it is never derived from dates.
package lawsuits

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSettled    Status = "settled"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
	StatusArchived   Status = "archived"
)

var (
	statuses = []Status{StatusInProgress, StatusSettled, StatusWon, StatusLost, StatusArchived}

	ErrInvalidStatus = errors.New("lawsuit status must be in_progress, settled, won, lost, or archived")
)

func (s *Status) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, s, statuses, ErrInvalidStatus)
}

type Lawsuit struct {
	ID            uuid.UUID    `json:"id"`
	CaseNumber    string       `json:"case_number"`
	Plaintiff     string       `json:"plaintiff"`
	Court         *string      `json:"court"`
	Subject       string       `json:"subject"`
	NR            *string      `json:"nr"`
	FiledOn       safety.Date  `json:"filed_on"`
	NextHearingOn *safety.Date `json:"next_hearing_on"`
	ClaimAmount   *float64     `json:"claim_amount"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Command carries the fields of a lawsuit. An empty Status defaults to in_progress.
type Command struct {
	CaseNumber    string       `json:"case_number" validate:"required,max=60"`
	Plaintiff     string       `json:"plaintiff" validate:"required,max=200"`
	Court         *string      `json:"court" validate:"omitempty,max=200"`
	Subject       string       `json:"subject" validate:"required,max=500"`
	NR            *string      `json:"nr" validate:"omitempty,max=20"`
	FiledOn       safety.Date  `json:"filed_on" validate:"required"`
	NextHearingOn *safety.Date `json:"next_hearing_on"`
	ClaimAmount   *float64     `json:"claim_amount" validate:"omitempty,gte=0"`
	Status        Status       `json:"status"`
}

// Summary aggregates the lawsuits matching a search. UpcomingHearings
// counts open lawsuits with a hearing between today and the expiring-soon
// window; OpenClaims sums the claim amounts of open lawsuits.
type Summary struct {
	Total            int            `json:"total"`
	ByStatus         map[Status]int `json:"by_status"`
	UpcomingHearings int            `json:"upcoming_hearings"`
	OpenClaims       float64        `json:"open_claims"`
}
