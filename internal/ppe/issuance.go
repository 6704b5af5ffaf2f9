// Package ppe tracks personal protective equipment issued to employees.
// An issuance is due for replacement on its replace_by date; returning the
// equipment archives the issuance.
package ppe

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

// Issuance records equipment delivered to one employee.
type Issuance struct {
	ID           uuid.UUID     `json:"id"`
	EmployeeID   *string       `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Department   string        `json:"department"`
	Equipment    string        `json:"equipment"`
	CANumber     *string       `json:"ca_number"`
	Quantity     int           `json:"quantity"`
	DeliveredOn  safety.Date   `json:"delivered_on"`
	ReplaceBy    *safety.Date  `json:"replace_by"`
	ReturnedOn   *safety.Date  `json:"returned_on"`
	Status       safety.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Command carries the fields of an issuance for create and update.
type Command struct {
	EmployeeID   *string       `json:"employee_id" validate:"omitempty,max=100"`
	EmployeeName string        `json:"employee_name" validate:"required,max=200"`
	Department   string        `json:"department" validate:"required,max=120"`
	Equipment    string        `json:"equipment" validate:"required,max=200"`
	CANumber     *string       `json:"ca_number" validate:"omitempty,max=20"`
	Quantity     int           `json:"quantity" validate:"gte=1"`
	DeliveredOn  safety.Date   `json:"delivered_on" validate:"required"`
	ReplaceBy    *safety.Date  `json:"replace_by"`
	ReturnedOn   *safety.Date  `json:"returned_on"`
	Status       safety.Status `json:"status"`
}

// Summary aggregates the issuances matching a search.
type Summary struct {
	safety.StatusCounts
	Units int `json:"units"`
}
