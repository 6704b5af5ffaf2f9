// Package chemicals keeps the inventory of hazardous products stored on site
// together with the revision and expiry of their safety data sheets (SDS).
package chemicals

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

type Chemical struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Manufacturer *string       `json:"manufacturer"`
	CASNumber    *string       `json:"cas_number"`
	HazardClass  *string       `json:"hazard_class"`
	Location     string        `json:"location"`
	Quantity     float64       `json:"quantity"`
	Unit         string        `json:"unit"`
	SDSRevisedOn *safety.Date  `json:"sds_revised_on"`
	ExpiresOn    *safety.Date  `json:"expires_on"`
	Status       safety.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Command struct {
	Name         string        `json:"name" validate:"required,max=200"`
	Manufacturer *string       `json:"manufacturer" validate:"omitempty,max=200"`
	CASNumber    *string       `json:"cas_number" validate:"omitempty,max=20"`
	HazardClass  *string       `json:"hazard_class" validate:"omitempty,max=100"`
	Location     string        `json:"location" validate:"required,max=200"`
	Quantity     float64       `json:"quantity" validate:"gte=0"`
	Unit         string        `json:"unit" validate:"required,max=20"`
	SDSRevisedOn *safety.Date  `json:"sds_revised_on"`
	ExpiresOn    *safety.Date  `json:"expires_on"`
	Status       safety.Status `json:"status"`
}

// Summary aggregates the chemicals matching a search. MissingSDS counts
// products without a recorded SDS revision.
type Summary struct {
	safety.StatusCounts
	Locations  int `json:"locations"`
	MissingSDS int `json:"missing_sds"`
}
