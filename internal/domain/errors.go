package domain

import (
	"errors"
	"fmt"
)

// Every error here is terminal for the invocation that produced it; nothing
// in the pipeline retries.
var (
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers both a truly absent job post and one owned by a
	// different user. The two cases must stay indistinguishable to the
	// caller.
	ErrNotFound = errors.New("job not found")

	ErrRateLimited = errors.New("rate limit exceeded")
)

// ValidationError reports malformed or oversized caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConfigurationError reports a missing provider credential or similar
// deployment problem detected at request time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

// UpstreamError is a non-success HTTP response from the completion
// provider. Status and body are surfaced to the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion request failed: %d %s", e.StatusCode, e.Body)
}

// FormatError means the provider's output could not be parsed into the
// expected JSON shape. The raw payload is never included; callers get a
// fixed message.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "failed to parse model response as JSON"
}

func (e *FormatError) Unwrap() error { return e.Err }

// StoreError wraps a rejected read or write from the persistence layer,
// keeping the store's message verbatim.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
