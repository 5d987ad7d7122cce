package dictionary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for an HTTP 404.
	ErrNotFound = errors.New("word not found")
	// ErrStatus is returned for any other non-200 status.
	ErrStatus = errors.New("unexpected status")
	// ErrEmptyBody is returned when the API answers 200 with no content.
	ErrEmptyBody = errors.New("empty response body")
	// ErrCircuitOpen is returned while the breaker rejects requests.
	ErrCircuitOpen = errors.New("dictionary circuit open")
	// ErrNoAPIKey is returned by NewClient when no key is configured.
	ErrNoAPIKey = errors.New("dictionary API key not configured")
)

// TransportError is a failed fetch for one word.
type TransportError struct {
	Word string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Word, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether err came out of a failed fetch.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
