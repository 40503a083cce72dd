package analyzer

import "fmt"

// TransportError reports a response whose HTTP status is outside 2xx.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// EnvelopeError reports a response body that is not a JSON envelope.
type EnvelopeError struct {
	Err error
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("failed to decode response envelope: %v", e.Err)
}

func (e *EnvelopeError) Unwrap() error { return e.Err }

// PayloadError reports an envelope whose data field is not a JSON-encoded
// string holding valid JSON.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("failed to decode payload: %v", e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }
