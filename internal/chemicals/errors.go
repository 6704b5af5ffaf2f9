package chemicals

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("chemical not found")
	ErrDuplicate = errors.New("chemical already exists")
	ErrInvalid   = errors.New("invalid chemical")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
