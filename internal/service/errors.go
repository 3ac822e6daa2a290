package service

import (
	"errors"
	"time"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFile is returned when an uploaded file has a type the
	// importer cannot read
	ErrUnsupportedFile = errors.New("unsupported file type")
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD request field. Empty input returns the
// zero time with no error; validation decides whether that is allowed.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
