package llm

import "fmt"

// APIError reports a non-success HTTP status from the completion backend.
// The raw server body is carried for the caller's diagnostics; the pipeline
// aborts the whole turn on any APIError.
type APIError struct {
	// StatusCode is the HTTP status returned by the backend.
	StatusCode int

	// Body is the raw error body (or message) returned by the backend.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: api error: status %d: %s", e.StatusCode, e.Body)
}

// TransportError reports a failure to reach the backend at all: DNS, TLS,
// connection, or a malformed URL. The underlying error is retained for
// errors.Is/As chains.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
