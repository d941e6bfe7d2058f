package adapter

import "errors"

// Sentinel errors produced by mapHTTPError. Callers match them with
// [errors.Is]; the wrapped text carries the backend's message when one
// was present in the response body.
var (
	// ErrNetwork indicates a transport failure: no response arrived at all
	// (connection refused, DNS failure, timeout).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized indicates HTTP 401: the token is missing, stale, or
	// rejected. Triggers a forced logout in the session service.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrValidation indicates a non-401 4xx, or a 2xx whose envelope has
	// success=false. The wrapped message is suitable for inline display.
	ErrValidation = errors.New("validation error")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")
)
