package dashboard

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/ssma/internal/accidents"
)

var ErrInvalid = errors.New("invalid dashboard request")

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return accidents.MapHTTPStatus(err)
	}
}
