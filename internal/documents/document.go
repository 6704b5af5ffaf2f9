// Package documents implements the compliance document domain (PGR, PCMSO,
// LTCAT, permits and similar programs). Each document is reviewed by a
// given date and may carry the signed file as an attachment.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/safety"
)

// Document represents a compliance document with its review schedule and optional file.
type Document struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Category    string                  `json:"category"`
	Description *string                 `json:"description"`
	Responsible *string                 `json:"responsible"`
	IssuedOn    *safety.Date            `json:"issued_on"`
	ReviewOn    *safety.Date            `json:"review_on"`
	Status      safety.Status           `json:"status"`
	Attachment  *attachments.Attachment `json:"attachment"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Command carries the metadata of a document for create and update.
// A Status of under_review or archived is kept; any other value is
// replaced by the status derived from ReviewOn.
type Command struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Category    string        `json:"category" validate:"required,max=60"`
	Description *string       `json:"description" validate:"omitempty,max=2000"`
	Responsible *string       `json:"responsible" validate:"omitempty,max=200"`
	IssuedOn    *safety.Date  `json:"issued_on"`
	ReviewOn    *safety.Date  `json:"review_on"`
	Status      safety.Status `json:"status"`
}

// Summary aggregates the documents matching a search.
type Summary struct {
	safety.StatusCounts
	ByCategory        map[string]int `json:"by_category"`
	WithoutAttachment int            `json:"without_attachment"`
}
