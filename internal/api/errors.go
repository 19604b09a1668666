package api

import "errors"

// Sentinel errors returned by the client. Callers match with errors.Is and
// turn them into local screen state; nothing retries.
var (
	// ErrUnauthorized covers bad credentials and missing/expired sessions.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed or duplicate input; the
	// backend's message is attached for inline display near the field.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable covers transport failures, timeouts and 5xx responses.
	ErrUnavailable = errors.New("backend unavailable")
)
