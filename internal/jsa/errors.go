package jsa

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("job safety analysis not found")
	ErrDuplicate = errors.New("job safety analysis already exists")
	ErrInvalid   = errors.New("invalid job safety analysis")
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
