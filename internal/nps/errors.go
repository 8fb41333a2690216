package nps

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by park code matches nothing.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the upstream API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("NPS API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("NPS API error: %d %s", e.StatusCode, e.Body)
}
