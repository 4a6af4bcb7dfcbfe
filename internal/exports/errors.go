package exports

import (
	"errors"
	"net/http"
)

// Domain errors for export operations.
var (
	ErrInvalidMode    = errors.New("invalid export mode")
	ErrInvalidRequest = errors.New("invalid export request")
)

// MapHTTPStatus maps export domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidMode) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
