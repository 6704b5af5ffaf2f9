// Package exams manages occupational health certificates (ASO) issued after
// admission, periodic, return-to-work, change-of-role, and dismissal exams.
package exams

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/safety"
)

// Kind is the occasion of the exam.
type Kind string

const (
	KindAdmission    Kind = "admission"
	KindPeriodic     Kind = "periodic"
	KindReturnToWork Kind = "return_to_work"
	KindChangeOfRole Kind = "change_of_role"
	KindDismissal    Kind = "dismissal"
)

// Result is the physician's fitness verdict.
type Result string

const (
	ResultFit   Result = "fit"
	ResultUnfit Result = "unfit"
)

var (
	kinds   = []Kind{KindAdmission, KindPeriodic, KindReturnToWork, KindChangeOfRole, KindDismissal}
	results = []Result{ResultFit, ResultUnfit}

	ErrInvalidKind   = errors.New("invalid exam kind")
	ErrInvalidResult = errors.New("invalid exam result")
)

func (k *Kind) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, k, kinds, ErrInvalidKind)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, r, results, ErrInvalidResult)
}

// Exam is one ASO issued to an employee.
type Exam struct {
	ID           uuid.UUID               `json:"id"`
	EmployeeID   *string                 `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	Department   string                  `json:"department"`
	Kind         Kind                    `json:"kind"`
	Result       Result                  `json:"result"`
	Physician    *string                 `json:"physician"`
	CRM          *string                 `json:"crm"`
	IssuedOn     safety.Date             `json:"issued_on"`
	ExpiresOn    *safety.Date            `json:"expires_on"`
	Status       safety.Status           `json:"status"`
	Attachment   *attachments.Attachment `json:"attachment"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// Command carries the fields of an exam for create and update.
type Command struct {
	EmployeeID   *string       `json:"employee_id" validate:"omitempty,max=100"`
	EmployeeName string        `json:"employee_name" validate:"required,max=200"`
	Department   string        `json:"department" validate:"required,max=120"`
	Kind         Kind          `json:"kind" validate:"required"`
	Result       Result        `json:"result" validate:"required"`
	Physician    *string       `json:"physician" validate:"omitempty,max=200"`
	CRM          *string       `json:"crm" validate:"omitempty,max=30"`
	IssuedOn     safety.Date   `json:"issued_on" validate:"required"`
	ExpiresOn    *safety.Date  `json:"expires_on"`
	Status       safety.Status `json:"status"`
}

// Summary aggregates the exams matching a search.
type Summary struct {
	safety.StatusCounts
	Unfit  int          `json:"unfit"`
	ByKind map[Kind]int `json:"by_kind"`
}
