package adapter

import (
	"errors"
)

// Errors mapped from HTTP responses and transport failures.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")

	// ErrRequestFailed wraps transport failures: refused connections,
	// timeouts, resets.
	ErrRequestFailed = errors.New("request failed")

	// ErrDecodingResponse is returned for a 2xx response with an unreadable body.
	ErrDecodingResponse = errors.New("failed to decode response")
)

// IsRetryable reports whether err is a transient transport or gateway
// failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRequestFailed) ||
		errors.Is(err, ErrBadGateway) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrGatewayTimeout)
}
