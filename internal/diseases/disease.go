// Package diseases records occupational diseases diagnosed in employees.
// Status follows the employee's treatment and is maintained by hand.
package diseases

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

type Status string

const (
	StatusUnderTreatment Status = "under_treatment"
	StatusOnLeave        Status = "on_leave"
	StatusRecovered      Status = "recovered"
)

var (
	statuses = []Status{StatusUnderTreatment, StatusOnLeave, StatusRecovered}

	ErrInvalidStatus = errors.New("disease status must be under_treatment, on_leave, or recovered")
)

func (s *Status) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, s, statuses, ErrInvalidStatus)
}

type Disease struct {
	ID           uuid.UUID   `json:"id"`
	EmployeeID   *string     `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Department   string      `json:"department"`
	ICDCode      *string     `json:"icd_code"`
	Description  string      `json:"description"`
	DiagnosedOn  safety.Date `json:"diagnosed_on"`
	CATIssued    bool        `json:"cat_issued"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Command carries the fields of a disease record. An empty Status defaults to under_treatment.
type Command struct {
	EmployeeID   *string     `json:"employee_id" validate:"omitempty,max=100"`
	EmployeeName string      `json:"employee_name" validate:"required,max=200"`
	Department   string      `json:"department" validate:"required,max=120"`
	ICDCode      *string     `json:"icd_code" validate:"omitempty,max=10"`
	Description  string      `json:"description" validate:"required,max=1000"`
	DiagnosedOn  safety.Date `json:"diagnosed_on" validate:"required"`
	CATIssued    bool        `json:"cat_issued"`
	Status       Status      `json:"status"`
}

// Summary aggregates the disease records matching a search.
// OnLeavePercent is the share of records whose employee is on leave.
type Summary struct {
	Total          int            `json:"total"`
	ByStatus       map[Status]int `json:"by_status"`
	WithoutCAT     int            `json:"without_cat"`
	OnLeavePercent float64        `json:"on_leave_percent"`
}
