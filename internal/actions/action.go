// Package actions tracks preventive and corrective actions raised by
// inspections, audits, accident investigations and similar sources.
package actions

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

type Action struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Origin      *string             `json:"origin"`
	Responsible string              `json:"responsible"`
	Department  *string             `json:"department"`
	DueOn       *safety.Date        `json:"due_on"`
	CompletedOn *safety.Date        `json:"completed_on"`
	Status      safety.ActionStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Command carries the fields of an action. A CompletedOn date marks the
// action done; otherwise Status is kept unless DueOn has passed.
type Command struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=4000"`
	Origin      *string             `json:"origin" validate:"omitempty,max=100"`
	Responsible string              `json:"responsible" validate:"required,max=200"`
	Department  *string             `json:"department" validate:"omitempty,max=100"`
	DueOn       *safety.Date        `json:"due_on"`
	CompletedOn *safety.Date        `json:"completed_on"`
	Status      safety.ActionStatus `json:"status"`
}

type Summary struct {
	safety.ActionCounts
	CompletionPercent float64 `json:"completion_percent"`
}
