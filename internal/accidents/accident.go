// Package accidents records workplace accidents and derives the frequency
// and severity rates reported to management.
package accidents

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

type Kind string

const (
	KindTypical             Kind = "typical"
	KindCommute             Kind = "commute"
	KindOccupationalDisease Kind = "occupational_disease"
)

// Investigation is the progress of the accident investigation.
type Investigation string

const (
	InvestigationOpen          Investigation = "open"
	InvestigationInvestigating Investigation = "investigating"
	InvestigationClosed        Investigation = "closed"
)

var (
	kinds          = []Kind{KindTypical, KindCommute, KindOccupationalDisease}
	investigations = []Investigation{InvestigationOpen, InvestigationInvestigating, InvestigationClosed}

	ErrInvalidKind          = errors.New("accident kind must be typical, commute, or occupational_disease")
	ErrInvalidInvestigation = errors.New("investigation status must be open, investigating, or closed")
)

func (k *Kind) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, k, kinds, ErrInvalidKind)
}

func (s *Investigation) UnmarshalJSON(data []byte) error {
	return safety.UnmarshalEnum(data, s, investigations, ErrInvalidInvestigation)
}

// Accident references the injured employee by an opaque id.
type Accident struct {
	ID           uuid.UUID     `json:"id"`
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Department   *string       `json:"department"`
	OccurredOn   safety.Date   `json:"occurred_on"`
	Kind         Kind          `json:"kind"`
	LostTime     bool          `json:"lost_time"`
	DaysOff      int           `json:"days_off"`
	Cause        *string       `json:"cause"`
	Description  *string       `json:"description"`
	CATNumber    *string       `json:"cat_number"`
	Status       Investigation `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Command carries the fields of an accident. An empty Status defaults to open.
type Command struct {
	EmployeeID   string        `json:"employee_id" validate:"required,max=100"`
	EmployeeName string        `json:"employee_name" validate:"required,max=200"`
	Department   *string       `json:"department" validate:"omitempty,max=100"`
	OccurredOn   safety.Date   `json:"occurred_on" validate:"required"`
	Kind         Kind          `json:"kind" validate:"required"`
	LostTime     bool          `json:"lost_time"`
	DaysOff      int           `json:"days_off" validate:"gte=0"`
	Cause        *string       `json:"cause" validate:"omitempty,max=500"`
	Description  *string       `json:"description" validate:"omitempty,max=4000"`
	CATNumber    *string       `json:"cat_number" validate:"omitempty,max=40"`
	Status       Investigation `json:"status"`
}

// Summary aggregates the accidents matching a search. AffectedPercent is
// the share of Headcount with at least one accident; it is 0 when no
// headcount was given.
type Summary struct {
	Total             int                   `json:"total"`
	LostTime          int                   `json:"lost_time"`
	DaysOff           int                   `json:"days_off"`
	AverageDaysOff    float64               `json:"average_days_off"`
	EmployeesAffected int                   `json:"employees_affected"`
	Headcount         int                   `json:"headcount"`
	AffectedPercent   float64               `json:"affected_percent"`
	ByKind            map[Kind]int          `json:"by_kind"`
	ByStatus          map[Investigation]int `json:"by_status"`
}

// Rates are the injury rates over a period. Nil rates could not be
// computed because no hours worked were given.
type Rates struct {
	From          *safety.Date `json:"from"`
	To            *safety.Date `json:"to"`
	HoursWorked   float64      `json:"hours_worked"`
	Accidents     int          `json:"accidents"`
	LostTime      int          `json:"lost_time"`
	DaysLost      int          `json:"days_lost"`
	FrequencyRate *float64     `json:"frequency_rate"`
	SeverityRate  *float64     `json:"severity_rate"`
}
