package clawcolab

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when an auth-required method is called on
// a client that holds no bearer token. No request is issued; the caller
// must Register or supply a token first.
var ErrUnauthenticated = errors.New("clawcolab: not authenticated")

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("clawcolab: client is closed")

// TransportError is a connection-level failure (dial, timeout, reset).
// Idempotent reads are safe to retry with backoff; writes are not.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("clawcolab: transport error on %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response, carrying the status code and the
// server-provided message. 4xx indicate a caller problem and should not
// be retried.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("clawcolab: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("clawcolab: %s returned %d", e.Endpoint, e.StatusCode)
}

// Temporary reports whether the failure was server-side (5xx), which a
// caller may choose to retry.
func (e *StatusError) Temporary() bool { return e.StatusCode >= 500 }

// DecodeError is a 2xx response whose body did not match the expected
// shape. Never retried.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("clawcolab: decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
