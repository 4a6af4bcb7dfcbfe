package pages

import (
	"errors"
	"net/http"
)

// Domain errors for page operations.
var (
	ErrNotFound  = errors.New("page not found")
	ErrDuplicate = errors.New("page already exists")
	ErrInvalidID = errors.New("invalid page id")
)

// MapHTTPStatus maps page domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
