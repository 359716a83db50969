package engine

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a data source or dataset referenced by a run
// doesn't exist or belongs to another tenant. The two cases are deliberately
// indistinguishable to the caller.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed run request or configuration. The
// caller is at fault, retrying won't help.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// AuthSigningError reports a local token signing precondition failure. It
// indicates a misconfigured data source, not an upstream problem.
type AuthSigningError struct {
	Reason string
}

func (e *AuthSigningError) Error() string {
	return "auth signing failed: " + e.Reason
}

// TransportError wraps connection and timeout failures while talking to the
// upstream API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "upstream request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamHTTPError is a non-2xx answer from the upstream API. Body is
// truncated before it is stored so error messages stay loggable.
type UpstreamHTTPError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// StatusFor maps an engine error to the HTTP status the API surfaces.
// Transport and upstream HTTP failures collapse to the same 502; logs carry
// the distinguishing detail.
func StatusFor(err error) int {
	var validation *ValidationError
	var signing *AuthSigningError
	var transport *TransportError
	var upstream *UpstreamHTTPError
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &signing):
		return http.StatusInternalServerError
	case errors.As(err, &transport), errors.As(err, &upstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
