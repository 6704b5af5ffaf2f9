package actions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/ssma/internal/safety"
)

var (
	ErrNotFound  = errors.New("action not found")
	ErrDuplicate = errors.New("action already exists")
	ErrInvalid   = errors.New("invalid action")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, safety.ErrInvalidActionStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
