package catalog

import "errors"

var (
	// ErrUnavailable indicates the catalog endpoint is unreachable.
	ErrUnavailable = errors.New("catalog service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("catalog request timed out")

	// ErrMalformed indicates the response body was not a catalog envelope.
	ErrMalformed = errors.New("malformed catalog response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("catalog retry attempts exhausted")

	// ErrUnknownKind indicates a request for an entity kind the catalog does not serve.
	ErrUnknownKind = errors.New("unknown catalog entity kind")
)
