// Package attachments stores files uploaded against SSMA records (training
// certificates, ASO scans, compliance documents) in blob storage and
// describes them on the owning record.
package attachments

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("attachment not found")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
)

// MapHTTPStatus maps attachment errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Attachment describes a stored file.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	PageCount   *int   `json:"page_count"`
	StorageKey  string `json:"storage_key"`
}

// Columns receives the nullable attachment columns of a record row.
type Columns struct {
	StorageKey  *string
	Filename    *string
	ContentType *string
	SizeBytes   *int64
	PageCount   *int
}

// Targets returns scan destinations in column order:
// attachment_key, attachment_filename, attachment_content_type,
// attachment_size_bytes, attachment_page_count.
func (c *Columns) Targets() []any {
	return []any{&c.StorageKey, &c.Filename, &c.ContentType, &c.SizeBytes, &c.PageCount}
}

// Attachment returns the scanned attachment, or nil when the record has none.
func (c *Columns) Attachment() *Attachment {
	if c.StorageKey == nil {
		return nil
	}
	a := &Attachment{
		StorageKey: *c.StorageKey,
		PageCount:  c.PageCount,
	}
	if c.Filename != nil {
		a.Filename = *c.Filename
	}
	if c.ContentType != nil {
		a.ContentType = *c.ContentType
	}
	if c.SizeBytes != nil {
		a.SizeBytes = *c.SizeBytes
	}
	return a
}

// ColumnNames lists the attachment columns in Targets order.
const ColumnNames = "attachment_key, attachment_filename, attachment_content_type, attachment_size_bytes, attachment_page_count"
