package diseases

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("disease record not found")
	ErrDuplicate = errors.New("disease record already exists")
	ErrInvalid   = errors.New("invalid disease record")
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
