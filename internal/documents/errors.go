package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/ssma/internal/attachments"
)

// Domain errors for document operations.
var (
	ErrNotFound          = errors.New("document not found")
	ErrDuplicate         = errors.New("document already exists")
	ErrInvalid           = errors.New("invalid document")
	ErrReviewBeforeIssue = errors.New("review_on must not be before issued_on")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
// Attachment errors are mapped by the attachments package.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) || errors.Is(err, ErrReviewBeforeIssue) {
		return http.StatusBadRequest
	}
	return attachments.MapHTTPStatus(err)
}
