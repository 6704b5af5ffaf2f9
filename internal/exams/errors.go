package exams

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/ssma/internal/attachments"
)

var (
	ErrNotFound          = errors.New("exam not found")
	ErrDuplicate         = errors.New("exam already exists")
	ErrInvalid           = errors.New("invalid exam")
	ErrExpiryBeforeIssue = errors.New("expires_on must not be before issued_on")
)

// MapHTTPStatus maps exam domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid),
		errors.Is(err, ErrExpiryBeforeIssue),
		errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrInvalidResult):
		return http.StatusBadRequest
	default:
		return attachments.MapHTTPStatus(err)
	}
}
