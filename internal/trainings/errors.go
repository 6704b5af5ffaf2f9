package trainings

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/ssma/internal/attachments"
)

// Domain errors for training operations.
var (
	ErrNotFound         = errors.New("training not found")
	ErrDuplicate        = errors.New("training already exists")
	ErrInvalid          = errors.New("invalid training")
	ErrExpiryBeforeDone = errors.New("expires_on must not be before completed_on")
)

// MapHTTPStatus maps training domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) || errors.Is(err, ErrExpiryBeforeDone) {
		return http.StatusBadRequest
	}
	return attachments.MapHTTPStatus(err)
}
