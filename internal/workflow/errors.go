package workflow

import (
	"errors"
	"net/http"
)

// Workflow stage errors.
var (
	ErrJournalNotFound      = errors.New("journal not found")
	ErrUnsupportedContainer = errors.New("unsupported journal container")
	ErrExtractFailed        = errors.New("page extraction failed")
	ErrRecognizeFailed      = errors.New("text recognition failed")
	ErrPersistFailed        = errors.New("page persistence failed")
)

// MapHTTPStatus maps workflow errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrJournalNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnsupportedContainer) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
