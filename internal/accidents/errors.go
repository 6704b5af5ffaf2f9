package accidents

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound      = errors.New("accident not found")
	ErrDuplicate     = errors.New("accident already exists")
	ErrInvalid       = errors.New("invalid accident")
	ErrDaysOffNoLost = errors.New("days off require a lost-time accident")
	ErrInvalidPeriod = errors.New("period start must not be after its end")
	ErrInvalidHours  = errors.New("hours worked must be a non-negative number")
	ErrInvalidCount  = errors.New("headcount must be a non-negative integer")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid),
		errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrInvalidInvestigation),
		errors.Is(err, ErrDaysOffNoLost),
		errors.Is(err, ErrInvalidPeriod),
		errors.Is(err, ErrInvalidHours),
		errors.Is(err, ErrInvalidCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
