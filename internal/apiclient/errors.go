package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call. Exactly one classification applies to any
// failure, and only KindUnauthorized tears the session down.
type Kind string

const (
	// KindUnauthenticated means no usable token existed locally; the request
	// was never dispatched.
	KindUnauthenticated Kind = "unauthenticated"
	// KindUnauthorized means the server rejected the credential (HTTP 401).
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound is HTTP 404.
	KindNotFound Kind = "not_found"
	// KindConflict is HTTP 409, e.g. duplicate username or email.
	KindConflict Kind = "conflict"
	// KindUnprocessable is HTTP 422. A validation failure, never an
	// authentication failure; the session stays intact.
	KindUnprocessable Kind = "unprocessable"
	// KindNetwork means the request produced no HTTP response at all.
	KindNetwork Kind = "network"
	// KindServer covers any other 4xx/5xx.
	KindServer Kind = "server"
)

// APIError is a classified failure from the search service.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed (%s)", e.Kind)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
