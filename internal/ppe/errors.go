package ppe

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("ppe issuance not found")
	ErrDuplicate       = errors.New("ppe issuance already exists")
	ErrInvalid         = errors.New("invalid ppe issuance")
	ErrDateBeforeIssue = errors.New("replace_by and returned_on must not be before delivered_on")
)

// MapHTTPStatus maps ppe domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrDateBeforeIssue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
