// Package trainings implements the employee training certification domain.
// Each training carries a completion date and an optional expiry date from
// which its status is classified; certificates are stored as attachments.
package trainings

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/safety"
)

// Training is one employee's completion of a safety course.
type Training struct {
	ID            uuid.UUID               `json:"id"`
	EmployeeID    *string                 `json:"employee_id"`
	EmployeeName  string                  `json:"employee_name"`
	Department    string                  `json:"department"`
	Course        string                  `json:"course"`
	NR            *string                 `json:"nr"`
	Instructor    *string                 `json:"instructor"`
	WorkloadHours int                     `json:"workload_hours"`
	CompletedOn   safety.Date             `json:"completed_on"`
	ExpiresOn     *safety.Date            `json:"expires_on"`
	Status        safety.Status           `json:"status"`
	Attachment    *attachments.Attachment `json:"attachment"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// Command carries the fields of a training for create and update.
// Status is only honored when it is a manual override (e.g. under_review);
// otherwise it is derived from ExpiresOn.
type Command struct {
	EmployeeID    *string       `json:"employee_id" validate:"omitempty,max=100"`
	EmployeeName  string        `json:"employee_name" validate:"required,max=200"`
	Department    string        `json:"department" validate:"required,max=120"`
	Course        string        `json:"course" validate:"required,max=200"`
	NR            *string       `json:"nr" validate:"omitempty,max=20"`
	Instructor    *string       `json:"instructor" validate:"omitempty,max=200"`
	WorkloadHours int           `json:"workload_hours" validate:"gte=0"`
	CompletedOn   safety.Date   `json:"completed_on" validate:"required"`
	ExpiresOn     *safety.Date  `json:"expires_on"`
	Status        safety.Status `json:"status"`
}

// Summary aggregates the statuses of the trainings matching a search.
type Summary struct {
	safety.StatusCounts
	Employees int `json:"employees"`
}
