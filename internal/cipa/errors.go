package cipa

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/ssma/internal/safety"
)

var (
	ErrNotFound  = errors.New("cipa meeting not found")
	ErrDuplicate = errors.New("cipa meeting already exists")
	ErrInvalid   = errors.New("invalid cipa meeting")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrInvalidMeetingStatus),
		errors.Is(err, safety.ErrInvalidActionStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
