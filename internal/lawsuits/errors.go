package lawsuits

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("lawsuit not found")
	ErrDuplicate = errors.New("lawsuit case number already exists")
	ErrInvalid   = errors.New("invalid lawsuit")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
