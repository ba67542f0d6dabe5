package llm

import "errors"

var (
	// ErrMissingAPIKey indicates no API key was configured. Every call made
	// through a client built without a key fails with it.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrUnavailable indicates the model endpoint could not be reached.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrUpstream indicates the endpoint answered with a non-success status
	// or a body that could not be decoded.
	ErrUpstream = errors.New("llm upstream error")
)
